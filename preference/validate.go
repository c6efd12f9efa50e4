// SPDX-License-Identifier: MIT

package preference

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// validateStruct runs the struct-tag rules of a dictionary.
func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInstance, err)
	}

	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInstance}, args...)...)
}

// checkList verifies that every entry of owner's list is known and listed once.
func checkList(owner string, list []string, known func(string) bool) error {
	seen := make(map[string]struct{}, len(list))
	for _, p := range list {
		if !known(p) {
			return invalidf("%s lists unknown agent %q", owner, p)
		}
		if _, dup := seen[p]; dup {
			return invalidf("%s lists %q more than once", owner, p)
		}
		seen[p] = struct{}{}
	}

	return nil
}

// ids collects entry ids, rejecting duplicates and ids already used by
// another role.
func ids(role string, entries []string, taken map[string]string) error {
	for _, id := range entries {
		if other, dup := taken[id]; dup {
			return invalidf("%s id %q already used by a %s", role, id, other)
		}
		taken[id] = role
	}

	return nil
}
