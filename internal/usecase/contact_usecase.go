package usecase

import (
	"context"
	"fmt"

	"github.com/ruhienterprises/careers-api/internal/dto"
	"github.com/ruhienterprises/careers-api/internal/service"
	"github.com/ruhienterprises/careers-api/internal/util"
	"github.com/sirupsen/logrus"
)

type ContactUsecase struct {
	email      service.EmailServiceInterface
	templateID string
	recipient  string
}

func NewContactUsecase(email service.EmailServiceInterface, templateID, recipient string) *ContactUsecase {
	return &ContactUsecase{email: email, templateID: templateID, recipient: recipient}
}

// Send forwards a contact-form message through the fixed template.
func (uc *ContactUsecase) Send(ctx context.Context, req dto.ContactRequest) error {
	if err := util.ValidateStruct(req); err != nil {
		return err
	}
	params := map[string]string{
		"to_email":   uc.recipient,
		"from_name":  req.Name,
		"from_email": req.Email,
		"phone":      req.Phone,
		"message":    req.Message,
	}
	if err := uc.email.SendTemplate(ctx, uc.templateID, params); err != nil {
		logrus.WithError(err).WithField("from_email", req.Email).Error("failed to send contact message")
		return fmt.Errorf("send contact message: %w: %w", ErrUpstream, err)
	}
	return nil
}
