package crypto

import (
	goerrors "errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/pkg/errors"
)

var _ service.PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher hashes passwords with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher uses bcrypt.DefaultCost when cost is out of range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if goerrors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errors.ErrInvalidRequest("password must be at most 72 bytes")
		}
		return "", errors.ErrInternal("failed to hash password").WithCause(err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return errors.ErrUnauthorized("invalid email or password")
	}
	return nil
}
