// Package postgres implements the secondary repository ports on GORM.
// Repositories translate gorm sentinel errors into the application error
// taxonomy so services never see driver details.
package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/entity"
)

// Migrations lists every entity handed to AutoMigrate, parents before
// children so foreign keys resolve.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Group{},
	&entity.Venue{},
	&entity.Event{},
	&entity.Membership{},
	&entity.Attendance{},
	&entity.GroupImage{},
	&entity.EventImage{},
}

// translate maps gorm errors onto the app taxonomy. entityName feeds the
// canonical "<Entity> couldn't be found" message.
func translate(err error, entityName, conflictMessage string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(entityName)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Conflict(conflictMessage)
	default:
		return apperror.Internal("Database error", err)
	}
}
