// Package notify announces successful registrations to other services.
package notify

import (
	"context"

	"github.com/Shivanand-hulikatti/eventease/internal/model"
)

// Publisher delivers a registration to interested consumers.
type Publisher interface {
	PublishRegistration(ctx context.Context, reg model.Registration) error
}

// Nop discards every registration.
type Nop struct{}

func (Nop) PublishRegistration(context.Context, model.Registration) error { return nil }
