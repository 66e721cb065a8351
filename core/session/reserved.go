package session

import "slices"

// ReservedKeys are attribute names used by the engine itself. Application code
// should not store free-form data under them. The façade does not enforce this.
var ReservedKeys = []string{
	"last_forward_from",
	"msg",
	"sticky_forms",
	"user",
	"guid",
	"id",
	"code",
	"name",
	"username",
}

// IsReserved reports whether key is one of ReservedKeys.
func IsReserved(key string) bool {
	return slices.Contains(ReservedKeys, key)
}
