package http

func (s *Server) register() {
	api := s.app.Group("/api")

	api.Post("/users", credentialLimiter(), s.signUp)

	api.Post("/session", credentialLimiter(), s.logIn)
	api.Delete("/session", s.logOut)
	api.Get("/session", s.currentUser)

	api.Get("/groups", s.listGroups)
	api.Get("/groups/organized", s.listOrganizedGroups)
	api.Get("/groups/:groupId", s.getGroup)
	api.Post("/groups", s.createGroup)
	api.Put("/groups/:groupId", s.updateGroup)
	api.Delete("/groups/:groupId", s.deleteGroup)

	api.Get("/groups/:groupId/venues", s.listVenues)
	api.Post("/groups/:groupId/venues", s.createVenue)
	api.Put("/venues/:venueId", s.updateVenue)

	api.Get("/events", s.listEvents)
	api.Get("/groups/:groupId/events", s.listGroupEvents)
	api.Post("/groups/:groupId/events", s.createEvent)
	api.Get("/events/:eventId", s.getEvent)
	api.Put("/events/:eventId", s.updateEvent)
	api.Delete("/events/:eventId", s.deleteEvent)

	api.Get("/groups/:groupId/members", s.listMembers)
	api.Post("/groups/:groupId/membership", s.requestMembership)
	api.Put("/groups/:groupId/membership", s.changeMembershipStatus)
	api.Delete("/groups/:groupId/membership/:memberId", s.deleteMembership)

	api.Get("/events/:eventId/attendees", s.listAttendees)
	api.Post("/events/:eventId/attendance", s.requestAttendance)
	api.Put("/events/:eventId/attendance", s.changeAttendanceStatus)
	api.Delete("/events/:eventId/attendance/:userId", s.deleteAttendance)

	api.Post("/groups/:groupId/images", s.addGroupImage)
	api.Post("/events/:eventId/images", s.addEventImage)
	api.Delete("/group-images/:imageId", s.deleteGroupImage)
	api.Delete("/event-images/:imageId", s.deleteEventImage)
}
