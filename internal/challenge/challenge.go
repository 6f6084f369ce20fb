// Package challenge issues and verifies the TOTP challenges the demo asks
// the user to type into the widget.
package challenge

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Challenge is one outstanding OTP entry task.
type Challenge struct {
	ID       uuid.UUID
	Account  string
	Secret   string
	URI      string
	IssuedAt time.Time
}

// Issuer creates and verifies TOTP challenges.
type Issuer struct {
	issuer string
	period uint
	skew   uint
	digits otp.Digits
}

// NewIssuer constructs an Issuer. If digits is not 6 or 8 it falls back to 6;
// a zero period uses the common 30-second period; a zero skew allows one
// period of clock drift either way.
func NewIssuer(issuer string, period, skew uint, digits otp.Digits) *Issuer {
	if digits != otp.DigitsSix && digits != otp.DigitsEight {
		digits = otp.DigitsSix
	}
	if period == 0 {
		period = 30
	}
	if skew == 0 {
		skew = 1
	}
	return &Issuer{
		issuer: issuer,
		period: period,
		skew:   skew,
		digits: digits,
	}
}

// Digits returns the code length challenges from this issuer require.
func (i *Issuer) Digits() int {
	return int(i.digits.Length())
}

// Period returns the code rotation period.
func (i *Issuer) Period() time.Duration {
	return time.Duration(i.period) * time.Second
}

// Issue creates a fresh challenge for an account name.
func (i *Issuer) Issue(account string) (Challenge, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      i.issuer,
		AccountName: account,
		Period:      i.period,
		SecretSize:  20, // RFC 4226/6238 recommendation
		Digits:      i.digits,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return Challenge{}, fmt.Errorf("generate totp key: %w", err)
	}

	return Challenge{
		ID:       uuid.New(),
		Account:  account,
		Secret:   key.Secret(),
		URI:      key.URL(),
		IssuedAt: time.Now(),
	}, nil
}

// Code returns the code valid for ch at the given time. The demo displays it
// so the user has something to type.
func (i *Issuer) Code(ch Challenge, at time.Time) (string, error) {
	code, err := totp.GenerateCodeCustom(ch.Secret, at, i.validateOpts())
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return code, nil
}

// Verify checks whether code is valid for ch at the given time.
func (i *Issuer) Verify(ch Challenge, code string, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, ch.Secret, at, i.validateOpts())
	return ok && err == nil
}

// Remaining returns how long the code valid at the given time stays valid.
func (i *Issuer) Remaining(at time.Time) time.Duration {
	period := int64(i.period)
	elapsed := at.Unix() % period
	return time.Duration(period-elapsed) * time.Second
}

func (i *Issuer) validateOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    i.period,
		Skew:      i.skew,
		Digits:    i.digits,
		Algorithm: otp.AlgorithmSHA1,
	}
}
