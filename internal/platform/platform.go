// Package platform decides, once at startup, which storage backend and which
// image URL variant the running target supports.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Capabilities describes what the execution target supports.
type Capabilities struct {
	// RelationalStorage is true when the embedded sqlite engine is usable.
	RelationalStorage bool
	// ConstrainedImages is true when cover URLs must be stripped of query
	// parameters and fall back to generic placeholders.
	ConstrainedImages bool
}

const (
	StorageAuto        = "auto"
	StorageRelational  = "relational"
	StoragePreferences = "preferences"

	ImagesAuto          = "auto"
	ImagesConstrained   = "constrained"
	ImagesUnconstrained = "unconstrained"
)

// Detect reports the capabilities of the current build target.
func Detect() Capabilities {
	return forTarget(runtime.GOOS, runtime.GOARCH)
}

func forTarget(goos, goarch string) Capabilities {
	if goos == "js" || goos == "wasip1" || goarch == "wasm" {
		return Capabilities{RelationalStorage: false, ConstrainedImages: true}
	}
	return Capabilities{RelationalStorage: true, ConstrainedImages: false}
}

// Resolve applies configuration overrides on top of detected capabilities.
// Empty or "auto" keeps the detected value.
func Resolve(detected Capabilities, storage, images string) (Capabilities, error) {
	caps := detected

	switch strings.ToLower(strings.TrimSpace(storage)) {
	case "", StorageAuto:
	case StorageRelational:
		caps.RelationalStorage = true
	case StoragePreferences:
		caps.RelationalStorage = false
	default:
		return Capabilities{}, fmt.Errorf("unknown storage backend %q (choose auto, relational, or preferences)", storage)
	}

	switch strings.ToLower(strings.TrimSpace(images)) {
	case "", ImagesAuto:
	case ImagesConstrained:
		caps.ConstrainedImages = true
	case ImagesUnconstrained:
		caps.ConstrainedImages = false
	default:
		return Capabilities{}, fmt.Errorf("unknown image variant %q (choose auto, constrained, or unconstrained)", images)
	}

	return caps, nil
}

func (c Capabilities) String() string {
	storage := StoragePreferences
	if c.RelationalStorage {
		storage = StorageRelational
	}
	images := ImagesUnconstrained
	if c.ConstrainedImages {
		images = ImagesConstrained
	}
	return fmt.Sprintf("storage=%s images=%s", storage, images)
}
