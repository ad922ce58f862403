package sauce_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSauce(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SAUCE Suite")
}
