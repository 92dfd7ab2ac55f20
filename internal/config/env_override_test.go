package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides_Email(t *testing.T) {
	t.Run("EMAIL_ON parses booleans", func(t *testing.T) {
		t.Setenv("EMAIL_ON", "True")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Email.On)
	})

	t.Run("EMAIL_ON garbage keeps the file value", func(t *testing.T) {
		t.Setenv("EMAIL_ON", "maybe")

		cfg := DefaultConfig()
		cfg.Email.On = true
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Email.On)
	})

	t.Run("SMTP settings", func(t *testing.T) {
		t.Setenv("SMTP_SRV", "smtp.gmail.com")
		t.Setenv("SMTP_PORT", "587")
		t.Setenv("SMTP_USR", "testuser@domain.nl")
		t.Setenv("SMTP_PWD", "boguspassword")
		t.Setenv("REPLY_TO", "testfrom@domain.nl")
		t.Setenv("ADM_EMAIL", "admin@domain.nl")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "smtp.gmail.com", cfg.Email.Server)
		assert.Equal(t, 587, cfg.Email.Port)
		assert.Equal(t, "testuser@domain.nl", cfg.Email.Username)
		assert.Equal(t, "boguspassword", cfg.Email.Password)
		assert.Equal(t, "testfrom@domain.nl", cfg.Email.ReplyTo)
		assert.Equal(t, "admin@domain.nl", cfg.Email.Admin)
	})

	t.Run("invalid SMTP_PORT keeps default", func(t *testing.T) {
		t.Setenv("SMTP_PORT", "smtp")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 465, cfg.Email.Port)
	})

	t.Run("GROEN_CONTACTS is a comma separated list", func(t *testing.T) {
		t.Setenv("GROEN_CONTACTS", "Piet (nr 3), Marie (nr 12) ,")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, []string{"Piet (nr 3)", "Marie (nr 12)"}, cfg.Email.GardenContacts)
	})
}

func TestEnvOverrides_Sources(t *testing.T) {
	t.Setenv("CONTACTS_SHEET_ID", "SomeContactsSheetID")
	t.Setenv("CONTACTS_SHEET_RANGE", "2:40")
	t.Setenv("SCHEMA_SHEET_ID", "SomeSchemaSheetID")
	t.Setenv("SCHEMA_SHEET_RANGE", "3:27")
	t.Setenv("GOOGLE_CREDENTIALS", "/etc/groenmail/creds.json")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "SomeContactsSheetID", cfg.Contacts.SheetID)
	assert.Equal(t, "2:40", cfg.Contacts.Range)
	assert.Equal(t, "SomeSchemaSheetID", cfg.Schedule.SheetID)
	assert.Equal(t, "3:27", cfg.Schedule.Range)
	assert.Equal(t, "/etc/groenmail/creds.json", cfg.Google.CredentialsFile)
	require.NoError(t, cfg.Validate())
}

func TestEnvOverrides_WinOverFile(t *testing.T) {
	path := t.TempDir() + "/groenmail.yaml"
	cfg := DefaultConfig()
	cfg.Email.Server = "from-file"
	require.NoError(t, cfg.Save(path))

	t.Setenv("SMTP_SRV", "from-env")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", loaded.Email.Server)
}
