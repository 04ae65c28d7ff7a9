package verification

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/perfectlysalon/admin-api/internal/clock"
	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/mailer"
	"github.com/perfectlysalon/admin-api/internal/models"
)

// Service issues and checks short-lived email verification codes.
// Codes are single-use; expired-but-unused rows are left behind rather
// than garbage-collected.
type Service struct {
	db     *gorm.DB
	sender mailer.EmailSender
	clock  clock.Clock
	ttl    time.Duration
	log    *slog.Logger
}

func New(db *gorm.DB, sender mailer.EmailSender, clk clock.Clock, ttl time.Duration, log *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Service{db: db, sender: sender, clock: clk, ttl: ttl, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newCode() string {
	var buf [4]byte
	_, _ = rand.Read(buf[:])
	return fmt.Sprintf("%06d", binary.BigEndian.Uint32(buf[:])%1000000)
}

// Issue stores a fresh code and emails it. The code is persisted before
// the send, so a delivery failure leaves it usable — but the caller is
// told, because the user has no other way to see it.
func (s *Service) Issue(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	now := s.clock.Now()

	row := models.VerificationCode{
		Email:     email,
		Code:      newCode(),
		ExpiresAt: now.Add(s.ttl),
		Verified:  false,
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Your Perfectly Salon verification code is %s.\n\nThis code will expire in %d minutes.\nIf you didn't request this code, please ignore this email.",
		row.Code,
		int(s.ttl.Minutes()),
	)

	if err := s.sender.Send(email, "Your Verification Code - Perfectly Salon", body); err != nil {
		s.log.Error("verification email send failed", "email", email, "err", err)
		return httperr.ErrBusinessMsg(httperr.CodeDeliveryFailed, "failed to send verification email")
	}

	return nil
}

// Check matches the most recent live code for the email and consumes
// it. Wrong, expired, and already-used codes all produce the same
// generic answer so callers learn nothing from the distinction.
func (s *Service) Check(ctx context.Context, email, code string) (bool, error) {
	email = normalizeEmail(email)
	now := s.clock.Now()

	var row models.VerificationCode
	err := s.db.WithContext(ctx).
		Where("email = ? AND code = ? AND verified = ? AND expires_at > ?",
			email, strings.TrimSpace(code), false, now).
		Order("created_at DESC").
		First(&row).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid or expired verification code")
		}
		return false, err
	}

	verifiedAt := now
	updates := map[string]any{
		"verified":    true,
		"verified_at": &verifiedAt,
	}
	if err := s.db.WithContext(ctx).
		Model(&models.VerificationCode{}).
		Where("id = ?", row.ID).
		Updates(updates).Error; err != nil {
		return false, err
	}

	return true, nil
}

// HasVerified reports whether the email has a consumed-but-unclaimed
// verified code, the precondition for self-service registration.
func (s *Service) HasVerified(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.VerificationCode{}).
		Where("email = ? AND verified = ?", normalizeEmail(email), true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Consume removes every code row for the email once a registration or
// login flow has finished with it.
func (s *Service) Consume(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		Delete(&models.VerificationCode{}).Error
}
