package service

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"

	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KeeperSchemes lists the URI schemes a keystore tier may point at.
var KeeperSchemes = []string{"awskms", "azurekeyvault", "base64key", "gcpkms", "hashivault"}

// KMSService opens keepers for keystore tiers.
type KMSService interface {
	// OpenKeeper opens the keeper behind keyURI. Unknown schemes yield ErrUnsupportedKeeper.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	// Only the scheme is echoed back: a base64key URI is the key itself.
	scheme := KeeperScheme(keyURI)
	if !slices.Contains(KeeperSchemes, scheme) {
		return nil, fmt.Errorf("%w: %q", cryptoDomain.ErrUnsupportedKeeper, scheme)
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s keeper: %w", scheme, err)
	}
	return keeper, nil
}

// KeeperScheme returns the scheme of keyURI, or "" when it does not parse.
func KeeperScheme(keyURI string) string {
	u, err := url.Parse(keyURI)
	if err != nil {
		return ""
	}
	return u.Scheme
}
