package smtp

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type Client struct {
	dialer *gomail.Dialer
	from   string
}

func NewClient(dialer *gomail.Dialer, from string) *Client {
	return &Client{
		dialer: dialer,
		from:   from,
	}
}

func (c *Client) SendWelcome(to, firstName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to MeetPup")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Hi %s,</p><p>Your MeetPup account is ready. Find a group, join an event, and meet some pups.</p>",
		firstName,
	))

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome mail: %w", err)
	}

	return nil
}
