package account

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
	"github.com/perfectlysalon/admin-api/internal/validators"
)

type Repository interface {
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, acc *models.Account) error
	SetBlocked(ctx context.Context, id uint, blocked bool) error
	List(ctx context.Context, search string) ([]models.Account, error)
}

// CodeVerifier is the slice of the verification service the directory
// needs: the OTP login gate and the registration email-proof check.
type CodeVerifier interface {
	Issue(ctx context.Context, email string) error
	Check(ctx context.Context, email, code string) (bool, error)
	HasVerified(ctx context.Context, email string) (bool, error)
	Consume(ctx context.Context, email string) error
}

type Service struct {
	repo  Repository
	codes CodeVerifier
}

func NewService(repo Repository, codes CodeVerifier) *Service {
	return &Service{repo: repo, codes: codes}
}

// --------------------------------------------------
// Input / validation
// --------------------------------------------------

type CreateAccountInput struct {
	Email         string
	Username      string
	Password      string
	FullName      string
	ContactNumber string
	Age           int
}

func (in *CreateAccountInput) normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
}

func (in CreateAccountInput) validate() error {
	switch {
	case !validators.IsEmailShaped(in.Email):
		return httperr.ErrBusinessMsg(httperr.CodeValidation, "please enter a valid email address")
	case !validators.IsValidUsername(in.Username):
		return httperr.ErrBusinessMsg(httperr.CodeValidation, "username must be 3-50 characters (letters, numbers, underscores)")
	case !validators.IsValidPassword(in.Password):
		return httperr.ErrBusinessMsg(httperr.CodeValidation, "password must be at least 6 characters")
	case !validators.IsValidFullName(in.FullName):
		return httperr.ErrBusinessMsg(httperr.CodeValidation, "name must be at least 2 characters")
	case !validators.IsValidContactNumber(in.ContactNumber):
		return httperr.ErrBusinessMsg(httperr.CodeValidation, "please enter a valid contact number (at least 10 digits)")
	case !validators.IsValidAge(in.Age):
		return httperr.ErrBusinessMsg(httperr.CodeValidation, "age must be between 13 and 120")
	}
	return nil
}

// checkDuplicates is the pre-check half; the unique constraints on the
// table are the race-proof backstop.
func (s *Service) checkDuplicates(ctx context.Context, in CreateAccountInput) error {
	if exists, err := s.repo.EmailExists(ctx, in.Email); err != nil {
		return err
	} else if exists {
		return httperr.ErrBusinessMsg(httperr.CodeDuplicateEmail, "this email is already registered")
	}

	if exists, err := s.repo.UsernameExists(ctx, in.Username); err != nil {
		return err
	} else if exists {
		return httperr.ErrBusinessMsg(httperr.CodeDuplicateUsername, "this username is already taken")
	}
	return nil
}

func translateConstraint(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusinessMsg(httperr.CodeDuplicateEmail, "email or username already registered")
	}
	return err
}

// --------------------------------------------------
// Client accounts (admin-side)
// --------------------------------------------------

// CreateClientAccount is the admin-facing path: no email proof needed,
// password digested before storage.
func (s *Service) CreateClientAccount(ctx context.Context, in CreateAccountInput) (*models.Account, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.checkDuplicates(ctx, in); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acc := &models.Account{
		Email:         in.Email,
		Username:      in.Username,
		PasswordHash:  string(hashed),
		FullName:      in.FullName,
		ContactNumber: in.ContactNumber,
		Age:           in.Age,
		Role:          models.RoleClient,
		Verified:      true,
	}

	if err := s.repo.Create(ctx, acc); err != nil {
		return nil, translateConstraint(err)
	}
	return acc, nil
}

// Register is the self-service path: the email must already hold a
// verified code row, and the username collision is surfaced before the
// account row is created so no orphan is left behind.
func (s *Service) Register(ctx context.Context, in CreateAccountInput) (*models.Account, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	verified, err := s.codes.HasVerified(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, httperr.ErrBusinessMsg(httperr.CodeEmailNotVerified, "email not verified; please verify your email first")
	}

	if err := s.checkDuplicates(ctx, in); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acc := &models.Account{
		Email:         in.Email,
		Username:      in.Username,
		PasswordHash:  string(hashed),
		FullName:      in.FullName,
		ContactNumber: in.ContactNumber,
		Age:           in.Age,
		Role:          models.RoleClient,
		Verified:      true,
	}

	if err := s.repo.Create(ctx, acc); err != nil {
		return nil, translateConstraint(err)
	}

	// Used codes are deleted once the registration claims them.
	if err := s.codes.Consume(ctx, in.Email); err != nil {
		return nil, err
	}

	return acc, nil
}

// SetBlocked is an idempotent toggle; blocking is enforced at login.
func (s *Service) SetBlocked(ctx context.Context, id uint, blocked bool) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return httperr.ErrBusinessMsg(httperr.CodeNotFound, "account not found")
	}
	return s.repo.SetBlocked(ctx, id, blocked)
}

func (s *Service) List(ctx context.Context, search string) ([]models.Account, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

// --------------------------------------------------
// Login (two-phase)
// --------------------------------------------------

// LoginStart verifies the credential and, instead of opening a session,
// sends the OTP. No token leaves this phase, so the OTP gate cannot be
// bypassed with phase-one credentials alone.
func (s *Service) LoginStart(ctx context.Context, identifier, password string) (string, error) {
	identifier = strings.TrimSpace(identifier)

	var (
		acc *models.Account
		err error
	)

	if validators.IsEmailShaped(identifier) {
		acc, err = s.repo.GetByEmail(ctx, strings.ToLower(identifier))
		if err != nil {
			return "", httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid email/username or password")
		}
	} else {
		acc, err = s.repo.GetByUsername(ctx, strings.ToLower(identifier))
		if err != nil {
			return "", httperr.ErrBusinessMsg(httperr.CodeNotFound, "invalid username or password")
		}
	}

	if acc.IsBlocked {
		return "", httperr.ErrBusinessMsg(httperr.CodeBlocked, "this account has been blocked; contact the salon")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return "", httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid email/username or password")
	}

	if err := s.codes.Issue(ctx, acc.Email); err != nil {
		return "", err
	}

	return acc.Email, nil
}

// LoginVerify exchanges a correct OTP for the account; the handler
// mints the session token. Codes for the email are consumed either way
// once the check succeeds.
func (s *Service) LoginVerify(ctx context.Context, email, code string) (*models.Account, error) {
	ok, err := s.codes.Check(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid or expired verification code")
	}

	acc, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "account not found")
	}

	if acc.IsBlocked {
		return nil, httperr.ErrBusinessMsg(httperr.CodeBlocked, "this account has been blocked; contact the salon")
	}

	if err := s.codes.Consume(ctx, acc.Email); err != nil {
		return nil, err
	}

	return acc, nil
}
