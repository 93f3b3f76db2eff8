package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/goaltrack/internal/constants"
)

func TestTokenRoundTrip(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken("ghp_example"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	got, err := GetToken()
	if err != nil {
		t.Fatalf("GetToken() error = %v", err)
	}
	if got != "ghp_example" {
		t.Errorf("GetToken() = %q, want %q", got, "ghp_example")
	}

	if err := DeleteToken(); err != nil {
		t.Fatalf("DeleteToken() error = %v", err)
	}
	if _, err := GetToken(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetToken() after delete error = %v, want ErrNotFound", err)
	}
	if err := DeleteToken(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteToken() error = %v, want ErrNotFound", err)
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := Set(constants.KeyringPostgresPassword, ""); err == nil {
		t.Error("Set() with empty secret should fail")
	}
}

func TestNamesAreIndependent(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken("token"); err != nil {
		t.Fatal(err)
	}
	if _, err := Get(constants.KeyringPostgresPassword); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(postgres) error = %v, want ErrNotFound", err)
	}
}

func TestUnavailableKeyring(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no dbus"))

	if IsAvailable() {
		t.Error("IsAvailable() = true with a failing keyring")
	}
	if _, err := GetToken(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("GetToken() error = %v, want ErrKeyringUnavailable", err)
	}
}

func TestAvailableMock(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("IsAvailable() = false with the mock keyring")
	}
}
