package devservice

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"
)

// defaultImages holds the image used for each kind when the request names none.
var defaultImages = map[string]string{
	"oracle": "docker.io/gvenzl/oracle-xe:21-slim-faststart",
}

// Image is a resolved image reference.
type Image struct {
	// Ref is the fully qualified reference, e.g. docker.io/gvenzl/oracle-xe:21.
	Ref string

	// Family is the familiar repository name without tag, e.g. gvenzl/oracle-xe.
	Family string
}

// DefaultImage returns the default image for a database kind.
func DefaultImage(kind string) (string, error) {
	image, ok := defaultImages[NormalizeKind(kind)]
	if !ok {
		return "", fmt.Errorf("%w: no default image for %s", ErrImageResolution, kind)
	}
	return image, nil
}

// ResolveImage normalizes an image name ("gvenzl/oracle-xe" becomes
// "docker.io/gvenzl/oracle-xe:latest"). Malformed names fail with ErrImageResolution.
func ResolveImage(name string) (Image, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Image{}, fmt.Errorf("%w: empty image name", ErrImageResolution)
	}

	named, err := reference.ParseNormalizedNamed(name)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %q: %v", ErrImageResolution, name, err)
	}

	return Image{
		Ref:    reference.TagNameOnly(named).String(),
		Family: reference.FamiliarName(named),
	}, nil
}
