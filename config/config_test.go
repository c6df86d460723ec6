package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("MYSQL_DSN", "user:pass@tcp(db:3306)/social?parseTime=true")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("ACTIVATION_TOKEN_SECRET", "activation-secret")
	t.Setenv("EMAIL_CHANGE_TOKEN_SECRET", "email-change-secret")
}

func TestPasswordPolicyValidate(t *testing.T) {
	policy := PasswordPolicy{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumber:    true,
		RequireSpecial:   true,
	}

	if err := policy.Validate("short"); err == nil {
		t.Fatalf("expected error for short password")
	}
	if err := policy.Validate("lowercase1!"); err == nil {
		t.Fatalf("expected error for missing uppercase")
	}
	if err := policy.Validate("UPPERCASE1!"); err == nil {
		t.Fatalf("expected error for missing lowercase")
	}
	if err := policy.Validate("NoNumber!"); err == nil {
		t.Fatalf("expected error for missing number")
	}
	if err := policy.Validate("NoSpecial1"); err == nil {
		t.Fatalf("expected error for missing special")
	}
	if err := policy.Validate("GoodPass1!"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	if got := getEnv("TEST_STRING", "default"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
	if got := getEnv("MISSING_STRING", "default"); got != "default" {
		t.Fatalf("expected default, got %q", got)
	}

	t.Setenv("TEST_DURATION", "30")
	if got := getDurationEnv("TEST_DURATION", 5*time.Minute); got != 30*time.Minute {
		t.Fatalf("expected 30m, got %v", got)
	}
	t.Setenv("TEST_DURATION", "invalid")
	if got := getDurationEnv("TEST_DURATION", 5*time.Minute); got != 5*time.Minute {
		t.Fatalf("expected default duration, got %v", got)
	}

	t.Setenv("TEST_BOOL", "true")
	if got := getBoolEnv("TEST_BOOL", false); got != true {
		t.Fatalf("expected true, got %v", got)
	}
	t.Setenv("TEST_BOOL", "invalid")
	if got := getBoolEnv("TEST_BOOL", true); got != true {
		t.Fatalf("expected default bool, got %v", got)
	}

	t.Setenv("TEST_INT", "42")
	if got := getIntEnv("TEST_INT", 5); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	t.Setenv("TEST_INT", "invalid")
	if got := getIntEnv("TEST_INT", 5); got != 5 {
		t.Fatalf("expected default int, got %d", got)
	}
}

func TestLoadRequiresMySQLDSN(t *testing.T) {
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	setRequiredEnv(t)
	t.Setenv("MYSQL_DSN", "")
	if cfg, err := Load(); err == nil || cfg != nil {
		t.Fatalf("expected error when MYSQL_DSN is missing")
	}
}

func TestLoadRequiresTokenSecrets(t *testing.T) {
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	for _, key := range []string{
		"ACCESS_TOKEN_SECRET",
		"REFRESH_TOKEN_SECRET",
		"ACTIVATION_TOKEN_SECRET",
		"EMAIL_CHANGE_TOKEN_SECRET",
	} {
		setRequiredEnv(t)
		t.Setenv(key, "")
		if cfg, err := Load(); err == nil || cfg != nil {
			t.Fatalf("expected error when %s is missing", key)
		}
	}
}

func TestLoadSuccess(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("ACCESS_TOKEN_TTL", "20")
	t.Setenv("REFRESH_TOKEN_TTL", "60")
	t.Setenv("ACTIVATION_TOKEN_TTL", "120")
	t.Setenv("EMAIL_CHANGE_TOKEN_TTL", "30")
	t.Setenv("SWEEP_INTERVAL", "90")
	t.Setenv("UNVERIFIED_MAX_AGE", "180")
	t.Setenv("APP_ENV", "production")
	t.Setenv("PASSWORD_MIN_LENGTH", "10")
	t.Setenv("PASSWORD_REQUIRE_SPECIAL", "true")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HTTPPort != "8081" {
		t.Fatalf("unexpected http port: %s", cfg.HTTPPort)
	}
	if cfg.AccessTokenTTL != 20*time.Minute || cfg.RefreshTokenTTL != 60*time.Minute {
		t.Fatalf("unexpected session ttl: %v %v", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if cfg.ActivationTokenTTL != 120*time.Minute || cfg.EmailChangeTokenTTL != 30*time.Minute {
		t.Fatalf("unexpected token ttl: %v %v", cfg.ActivationTokenTTL, cfg.EmailChangeTokenTTL)
	}
	if cfg.SweepInterval != 90*time.Minute || cfg.UnverifiedMaxAge != 180*time.Minute {
		t.Fatalf("unexpected sweep settings: %v %v", cfg.SweepInterval, cfg.UnverifiedMaxAge)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production environment")
	}
	if cfg.PasswordPolicy.MinLength != 10 || !cfg.PasswordPolicy.RequireSpecial {
		t.Fatalf("unexpected password policy: %+v", cfg.PasswordPolicy)
	}
	if cfg.SMTP.Port != 2525 {
		t.Fatalf("unexpected smtp port: %d", cfg.SMTP.Port)
	}
}

func TestLoadUsesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("unexpected default http port: %s", cfg.HTTPPort)
	}
	if cfg.AccessTokenTTL != 15*time.Minute || cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("unexpected default session ttl: %v %v", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if cfg.ActivationTokenTTL != 24*time.Hour || cfg.EmailChangeTokenTTL != time.Hour {
		t.Fatalf("unexpected default token ttl: %v %v", cfg.ActivationTokenTTL, cfg.EmailChangeTokenTTL)
	}
	if cfg.SweepInterval != time.Hour || cfg.UnverifiedMaxAge != 24*time.Hour {
		t.Fatalf("unexpected default sweep settings: %v %v", cfg.SweepInterval, cfg.UnverifiedMaxAge)
	}
	if cfg.IsProduction() {
		t.Fatalf("expected non-production default")
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		MySQLDSN: "user:pass@tcp(localhost:3306)/social?parseTime=true",
	}
	if got := cfg.DSN(); got != cfg.MySQLDSN {
		t.Fatalf("expected %q, got %q", cfg.MySQLDSN, got)
	}
}

func TestLoadRespectsEnvFileLocation(t *testing.T) {
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	envContent := "MYSQL_DSN=user:pass@tcp(localhost:3306)/social?parseTime=true\n" +
		"ACCESS_TOKEN_SECRET=envfile-access\n" +
		"REFRESH_TOKEN_SECRET=envfile-refresh\n" +
		"ACTIVATION_TOKEN_SECRET=envfile-activation\n" +
		"EMAIL_CHANGE_TOKEN_SECRET=envfile-email-change\n" +
		"HTTP_PORT=9099\n"
	envPath := filepath.Join(tmp, ".env")
	if err := os.WriteFile(envPath, []byte(envContent), 0600); err != nil {
		t.Fatalf("write .env failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.AccessTokenSecret != "envfile-access" || cfg.HTTPPort != "9099" {
		t.Fatalf("expected env file values, got %s %s", cfg.AccessTokenSecret, cfg.HTTPPort)
	}
}
