package server

import "fmt"

type accountAssociation struct {
	Header    string `json:"header"`
	Payload   string `json:"payload"`
	Signature string `json:"signature"`
}

type frameManifest struct {
	Version               string   `json:"version"`
	Name                  string   `json:"name"`
	IconURL               string   `json:"iconUrl"`
	HomeURL               string   `json:"homeUrl"`
	ImageURL              string   `json:"imageUrl"`
	SplashImageURL        string   `json:"splashImageUrl"`
	SplashBackgroundColor string   `json:"splashBackgroundColor"`
	WebhookURL            string   `json:"webhookUrl"`
	Subtitle              string   `json:"subtitle"`
	Description           string   `json:"description"`
	PrimaryCategory       string   `json:"primaryCategory"`
	Tags                  []string `json:"tags"`
}

type manifest struct {
	AccountAssociation accountAssociation `json:"accountAssociation"`
	Frame              frameManifest      `json:"frame"`
}

// buildManifest renders the mini app manifest. The account association is
// a placeholder until signed with the custody wallet.
func (s *Server) buildManifest() manifest {
	base := s.cfg.PublicURL
	icon := s.cfg.IconURL
	if icon == "" {
		icon = base + "/icon.png"
	}
	return manifest{
		AccountAssociation: accountAssociation{
			Header:    "placeholder",
			Payload:   "placeholder",
			Signature: "placeholder",
		},
		Frame: frameManifest{
			Version:               "1",
			Name:                  s.cfg.Name,
			IconURL:               icon,
			HomeURL:               base,
			ImageURL:              base + "/hero.png",
			SplashImageURL:        base + "/splash.png",
			SplashBackgroundColor: "#06070A",
			WebhookURL:            base + "/api/notification",
			Subtitle:              "Free mint NFT on Base",
			Description: fmt.Sprintf(
				"Mint a free NFT on Base with 0 gas. Builder Code: %s. ERC-8021 attribution.",
				s.attributor.Code(),
			),
			PrimaryCategory: "utility",
			Tags:            []string{"nft", "mint", "free", "base", "builder"},
		},
	}
}
