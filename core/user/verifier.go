package user

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")

// Verifier checks a login password against a resolved User. The store itself
// never inspects credentials; the active Verifier is the single place where
// the policy lives so a real check can be swapped in without touching the
// rest of the system.
type Verifier interface {
	Verify(usr User, password string) error
}

type acceptAnyVerifier struct{}

// AcceptAnyVerifier accepts any password once the username matched a known
// record. This is a demo gate, NOT a security control; deployments beyond a
// demo must configure BcryptVerifier.
func AcceptAnyVerifier() Verifier { return acceptAnyVerifier{} }

func (acceptAnyVerifier) Verify(User, string) error { return nil }

type bcryptVerifier struct{}

// BcryptVerifier checks the password against User.PasswordHash.
func BcryptVerifier() Verifier { return bcryptVerifier{} }

func (bcryptVerifier) Verify(usr User, password string) error {
	if err := usr.CheckPassword(password); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
