package fluxsurface_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFluxSurface(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "FluxSurface Suite")
}
