package shared

import (
	"strings"

	"github.com/google/uuid"
)

// Entity id prefixes carried over from the legacy data. The pass and photo
// prefixes double as the hall-pass token and blob key namespaces.
const (
	PrefixUser  = "user_"
	PrefixAdmin = "admin_"
	PrefixDrive = "drive_"
	PrefixAnno  = "anno_"
	PrefixAlum  = "alum_"
	PrefixPass  = "pass_"
	PrefixPhoto = "img_"
)

// NewID returns a prefixed, collision-resistant identifier.
func NewID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
