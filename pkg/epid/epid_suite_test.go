package epid_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEpid(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "epid Suite")
}
