package service

import (
	"fmt"

	"github.com/MKhiriev/go-vaultx/models"
)

type passwordService struct {
	generator PasswordGenerator
	clipboard ClipboardExposer
}

// NewPasswordService returns a PasswordService drawing candidates from
// generator and copying them through clipboard.
func NewPasswordService(generator PasswordGenerator, clipboard ClipboardExposer) PasswordService {
	return &passwordService{generator: generator, clipboard: clipboard}
}

func (p *passwordService) Generate(policy models.PasswordPolicy) (string, error) {
	return p.generator.Generate(policy)
}

func (p *passwordService) GenerateAndExpose(policy models.PasswordPolicy) (string, error) {
	password, err := p.generator.Generate(policy)
	if err != nil {
		return "", err
	}
	if err = p.clipboard.Expose(password); err != nil {
		return "", fmt.Errorf("expose generated password: %w", err)
	}
	return password, nil
}
