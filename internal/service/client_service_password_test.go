package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MKhiriev/go-vaultx/internal/crypto"
	"github.com/MKhiriev/go-vaultx/internal/generator"
	"github.com/MKhiriev/go-vaultx/internal/logger"
	"github.com/MKhiriev/go-vaultx/internal/store"
	"github.com/MKhiriev/go-vaultx/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	exposed []string
	revoked int
	err     error
}

func (f *fakeClipboard) Expose(secret string) error {
	if f.err != nil {
		return f.err
	}
	f.exposed = append(f.exposed, secret)
	return nil
}

func (f *fakeClipboard) Revoke() (bool, error) {
	f.revoked++
	return len(f.exposed) > 0, nil
}

func TestPasswordService_GenerateAndExpose(t *testing.T) {
	clip := &fakeClipboard{}
	svc := NewPasswordService(generator.New(), clip)

	policy := models.PasswordPolicy{Length: 20, Digits: true}
	password, err := svc.GenerateAndExpose(policy)
	require.NoError(t, err)

	assert.Len(t, password, 20)
	assert.Empty(t, strings.Trim(password, generator.DigitChars))
	assert.Equal(t, []string{password}, clip.exposed)
}

func TestPasswordService_GenerateAndExpose_InvalidPolicy(t *testing.T) {
	clip := &fakeClipboard{}
	svc := NewPasswordService(generator.New(), clip)

	_, err := svc.GenerateAndExpose(models.PasswordPolicy{Length: 16})
	assert.ErrorIs(t, err, generator.ErrEmptyCharset)
	assert.Empty(t, clip.exposed, "nothing is copied when generation fails")
}

func TestPasswordService_GenerateAndExpose_ClipboardFailure(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("no display")}
	svc := NewPasswordService(generator.New(), clip)

	_, err := svc.GenerateAndExpose(models.DefaultPasswordPolicy())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
}

func TestPasswordService_Generate_DoesNotExpose(t *testing.T) {
	clip := &fakeClipboard{}
	svc := NewPasswordService(generator.New(), clip)

	password, err := svc.Generate(models.DefaultPasswordPolicy())
	require.NoError(t, err)
	assert.Len(t, password, models.DefaultPasswordLength)
	assert.Empty(t, clip.exposed)
}

func TestNewClientServices_Wiring(t *testing.T) {
	clip := &fakeClipboard{}
	pointer := &spyPointer{}
	services := NewClientServices(store.NewMemorySlotStorage(), crypto.ChaCha20Poly1305, clip, pointer, logger.Nop())

	require.NotNil(t, services.KeyManager)
	require.NotNil(t, services.VaultLoader)
	require.NotNil(t, services.SessionGuard)
	require.NotNil(t, services.PasswordService)

	ctx := context.Background()
	session, err := services.SessionGuard.Activate(ctx, "alice")
	require.NoError(t, err)

	item, err := session.Items().Add(ctx, models.VaultItemDraft{Title: "t", Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Len(t, item.ID, 36, "ids are UUID strings")

	require.NoError(t, services.SessionGuard.Deactivate(ctx))
	assert.Equal(t, 1, clip.revoked)
	assert.Equal(t, int64(1), pointer.calls.Load())
}
