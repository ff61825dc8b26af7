// Package license implements the trial/activation core: a 10-day trial that
// starts when the license row is first created, and key-based activation that
// promotes the deployment to licensed state.
//
// IsActive is a one-way "was activated" flag. It is never flipped back to
// false when the purchased period runs out; real-time validity is always
// computed from ExpiresAt. An activated-then-expired deployment therefore
// reports IsActive=true, LicenseValid=false, TrialDaysRemaining=0 and
// Blocked=true until a new key is redeemed.
package license

import (
	"errors"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"notesvc/internal/app/ds"
	"notesvc/internal/app/repository"
)

// TrialDays is the length of the unlicensed evaluation window.
const TrialDays = 10

// Activation result messages, stable strings the client matches on.
const (
	MsgInvalidKey      = "Invalid license key"
	MsgKeyExpired      = "License key has expired"
	MsgLicenseNotFound = "Server license not found"
	MsgActivationError = "Error activating license"
	MsgActivated       = "License activated successfully"
)

type Service struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewService(repo *repository.Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Info is the read-only license status exposed to the client.
type Info struct {
	ServerID            string     `json:"server_id"`
	IsActive            bool       `json:"is_active"`
	OwnerName           *string    `json:"owner_name,omitempty"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
	TrialDaysRemaining  int        `json:"trial_days_remaining"`
	IsBlocked           bool       `json:"is_blocked"`
}

// ActivationResult is the discriminated outcome of a key redemption. It is
// always returned, never an error: storage failures are logged and folded
// into a generic failure message.
type ActivationResult struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	OwnerName string     `json:"owner_name,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (s *Service) trialEnd(license *ds.License) time.Time {
	return license.TrialStartedAt.Add(TrialDays * 24 * time.Hour)
}

// isTrialValid reports whether the deployment may run without a valid key.
// An activated license overrides the trial question entirely.
func (s *Service) isTrialValid(license *ds.License) bool {
	if license.IsActive {
		return true
	}
	return s.now().Before(s.trialEnd(license))
}

// trialDaysRemaining counts whole days left in the trial, rounding up so a
// partial day still counts as a full day owed to the user. Activated
// deployments always report 0, even after the license itself expires.
func (s *Service) trialDaysRemaining(license *ds.License) int {
	if license.IsActive {
		return 0
	}
	remaining := s.trialEnd(license).Sub(s.now())
	days := int(math.Ceil(remaining.Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// isLicenseValid reports whether an activated license is currently usable.
// IsActive alone is not enough: the expiry is checked against now.
func (s *Service) isLicenseValid(license *ds.License) bool {
	if !license.IsActive {
		return false
	}
	if license.ExpiresAt == nil {
		return false
	}
	return s.now().Before(*license.ExpiresAt)
}

// isBlocked is the overall access decision: blocked once neither the trial
// nor the license holds.
func (s *Service) isBlocked(license *ds.License) bool {
	return !s.isTrialValid(license) && !s.isLicenseValid(license)
}

// GetInfo loads (lazily creating) the license row and derives the status.
func (s *Service) GetInfo() (*Info, error) {
	license, err := s.repo.GetOrCreateLicense()
	if err != nil {
		return nil, err
	}

	return &Info{
		ServerID:           license.ServerID,
		IsActive:           license.IsActive,
		OwnerName:          license.OwnerName,
		ExpiresAt:          license.ExpiresAt,
		TrialDaysRemaining: s.trialDaysRemaining(license),
		IsBlocked:          s.isBlocked(license),
	}, nil
}

// CheckAccess reports the two validity checks separately for the client.
func (s *Service) CheckAccess() (hasAccess, licenseValid, trialValid bool, err error) {
	license, err := s.repo.GetOrCreateLicense()
	if err != nil {
		return false, false, false, err
	}
	licenseValid = s.isLicenseValid(license)
	trialValid = s.isTrialValid(license)
	return licenseValid || trialValid, licenseValid, trialValid, nil
}

// IsBlocked is the request-boundary gate decision.
func (s *Service) IsBlocked() (bool, error) {
	license, err := s.repo.GetOrCreateLicense()
	if err != nil {
		return false, err
	}
	return s.isBlocked(license), nil
}

// Activate redeems a presented key. Redemption overwrites any prior
// activation state unconditionally; the key itself is not marked consumed.
func (s *Service) Activate(presentedKey string) *ActivationResult {
	key, err := s.repo.GetLicenseKeyByKey(presentedKey)
	if err != nil {
		// only a key that was never issued is "invalid"; storage failures
		// report the generic activation error
		if errors.Is(err, repository.ErrLicenseKeyNotFound) {
			return &ActivationResult{Success: false, Message: MsgInvalidKey}
		}
		log.Errorf("license activation: loading key: %v", err)
		return &ActivationResult{Success: false, Message: MsgActivationError}
	}

	if !key.ExpiresAt.After(s.now()) {
		return &ActivationResult{Success: false, Message: MsgKeyExpired}
	}

	license, err := s.repo.GetLicense()
	if err != nil {
		// Lazy creation should make this unreachable, but a missing row is
		// still reported distinctly from a storage failure.
		if err == repository.ErrLicenseNotFound {
			return &ActivationResult{Success: false, Message: MsgLicenseNotFound}
		}
		log.Errorf("license activation: loading license row: %v", err)
		return &ActivationResult{Success: false, Message: MsgActivationError}
	}

	expiresAt := key.ExpiresAt
	err = s.repo.UpdateLicense(license.ID, map[string]interface{}{
		"is_active":  true,
		"owner_name": key.OwnerName,
		"expires_at": expiresAt,
		"updated_at": s.now(),
	})
	if err != nil {
		log.Errorf("license activation: updating license row: %v", err)
		return &ActivationResult{Success: false, Message: MsgActivationError}
	}

	return &ActivationResult{
		Success:   true,
		Message:   MsgActivated,
		OwnerName: key.OwnerName,
		ExpiresAt: &expiresAt,
	}
}

// ServerID returns the deployment identifier shown on the activation screen.
func (s *Service) ServerID() (string, error) {
	license, err := s.repo.GetOrCreateLicense()
	if err != nil {
		return "", err
	}
	return license.ServerID, nil
}

// Settings returns deployment-level toggles stored on the license row.
func (s *Service) Settings() (allowPublicRegistration bool, err error) {
	license, err := s.repo.GetOrCreateLicense()
	if err != nil {
		return false, err
	}
	return license.AllowPublicRegistration, nil
}

// UpdateSettings flips deployment-level toggles on the license row.
func (s *Service) UpdateSettings(allowPublicRegistration bool) error {
	license, err := s.repo.GetOrCreateLicense()
	if err != nil {
		return err
	}
	return s.repo.UpdateLicense(license.ID, map[string]interface{}{
		"allow_public_registration": allowPublicRegistration,
	})
}
