package config

import (
	"fmt"
	"os"
)

func Template() string {
	return appTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(appTemplate), 0o600)
}

const appTemplate = `name = "suffixctl"
addr = ":9000"
public_url = "https://goolq-mint.vercel.app"
icon_url = ""
cors_origins = ["http://localhost:3000"]

# attribution trailer identifier, one byte per character, at most 255
builder_code = "bc_291jsyn1"
nft_contract = "0xc443595cb9e568ea6ee46e5d70830dd6b18a6385"

# require: refuse to build calls when the builder code cannot be encoded
# fallback: build unattributed calls instead
attribution_policy = "require"

# when set, POST /api/notification requires "Authorization: Bearer <token>"
webhook_token = ""
`
