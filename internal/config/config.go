package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/suffixctl/internal/attribution"
	"github.com/danmuck/suffixctl/internal/protocol/calldata"
	"github.com/danmuck/suffixctl/internal/protocol/suffix"
)

const (
	EnvBuilderCode  = "SUFFIXCTL_BUILDER_CODE"
	EnvNFTContract  = "SUFFIXCTL_NFT_CONTRACT"
	EnvPublicURL    = "SUFFIXCTL_PUBLIC_URL"
	EnvName         = "SUFFIXCTL_NAME"
	EnvAddr         = "SUFFIXCTL_ADDR"
	EnvWebhookToken = "SUFFIXCTL_WEBHOOK_TOKEN"

	DefaultName        = "suffixctl"
	DefaultAddr        = ":9000"
	DefaultBuilderCode = "bc_291jsyn1"
	DefaultNFTContract = "0xc443595cb9e568ea6ee46e5d70830dd6b18a6385"
	DefaultPublicURL   = "https://goolq-mint.vercel.app"
)

// AppConfig is the resolved service configuration.
type AppConfig struct {
	Name              string
	Addr              string
	PublicURL         string
	IconURL           string
	BuilderCode       string
	NFTContract       string
	CorsOrigins       []string
	AttributionPolicy string
	WebhookToken      string
}

type fileConfig struct {
	Name              string   `toml:"name"`
	Addr              string   `toml:"addr"`
	PublicURL         string   `toml:"public_url"`
	IconURL           string   `toml:"icon_url"`
	BuilderCode       string   `toml:"builder_code"`
	NFTContract       string   `toml:"nft_contract"`
	CorsOrigins       []string `toml:"cors_origins"`
	AttributionPolicy string   `toml:"attribution_policy"`
	WebhookToken      string   `toml:"webhook_token"`
}

func Default() AppConfig {
	return AppConfig{
		Name:              DefaultName,
		Addr:              DefaultAddr,
		PublicURL:         DefaultPublicURL,
		BuilderCode:       DefaultBuilderCode,
		NFTContract:       DefaultNFTContract,
		CorsOrigins:       []string{"http://localhost:3000"},
		AttributionPolicy: attribution.PolicyRequire.String(),
	}
}

// Load reads path (skipped when empty), applies environment overrides and
// validates the result.
func Load(path string) (AppConfig, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if err := loadFile(path, &cfg); err != nil {
			return AppConfig{}, err
		}
	}
	ApplyEnv(&cfg)
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *AppConfig) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("name") {
		cfg.Name = strings.TrimSpace(raw.Name)
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("public_url") {
		cfg.PublicURL = strings.TrimRight(strings.TrimSpace(raw.PublicURL), "/")
	}
	if meta.IsDefined("icon_url") {
		cfg.IconURL = strings.TrimSpace(raw.IconURL)
	}
	if meta.IsDefined("builder_code") {
		// not trimmed: whitespace is part of the identifier bytes
		cfg.BuilderCode = raw.BuilderCode
	}
	if meta.IsDefined("nft_contract") {
		cfg.NFTContract = strings.TrimSpace(raw.NFTContract)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = normalizeOrigins(raw.CorsOrigins)
	}
	if meta.IsDefined("attribution_policy") {
		cfg.AttributionPolicy = strings.ToLower(strings.TrimSpace(raw.AttributionPolicy))
	}
	if meta.IsDefined("webhook_token") {
		cfg.WebhookToken = strings.TrimSpace(raw.WebhookToken)
	}
	return nil
}

// ApplyEnv overlays non-empty environment values onto cfg.
func ApplyEnv(cfg *AppConfig) {
	if v, ok := os.LookupEnv(EnvBuilderCode); ok && v != "" {
		cfg.BuilderCode = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvNFTContract)); v != "" {
		cfg.NFTContract = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPublicURL)); v != "" {
		cfg.PublicURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv(EnvName)); v != "" {
		cfg.Name = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvWebhookToken)); v != "" {
		cfg.WebhookToken = v
	}
}

func Validate(cfg AppConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("config missing name")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("config missing addr")
	}
	if _, err := calldata.ParseAddress(cfg.NFTContract); err != nil {
		return fmt.Errorf("nft_contract invalid: %w", err)
	}
	policy, err := attribution.ParsePolicy(cfg.AttributionPolicy)
	if err != nil {
		return fmt.Errorf("attribution_policy invalid: %w", err)
	}
	if policy == attribution.PolicyRequire {
		if _, err := suffix.EncodeIdentifier(cfg.BuilderCode); err != nil {
			return fmt.Errorf("builder_code invalid: %w", err)
		}
	}
	return nil
}

// Contract returns the parsed NFT contract address. Validate has already
// rejected malformed values.
func (c AppConfig) Contract() calldata.Address {
	a, _ := calldata.ParseAddress(c.NFTContract)
	return a
}

// Policy returns the parsed attribution policy, defaulting to require.
func (c AppConfig) Policy() attribution.Policy {
	p, err := attribution.ParsePolicy(c.AttributionPolicy)
	if err != nil {
		return attribution.PolicyRequire
	}
	return p
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
