// Package cli holds the fitctl admin commands.
package cli

import (
	"io"

	"anoa.com/fitquest/internal/server"
	"gorm.io/gorm"
)

// Context is passed to every command's Run method.
type Context struct {
	DB       *gorm.DB
	Services *server.Services
	Out      io.Writer
}
