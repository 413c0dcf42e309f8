package main_test

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOpsTrack(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "OpsTrack Suite")
}

var _ = Describe("OpenAPI document", func() {
	It("is a valid OpenAPI 3 spec", func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromFile("api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())

		Expect(doc.Validate(loader.Context)).To(Succeed())
	})

	It("documents every mounted route group", func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromFile("api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())

		for _, path := range []string{
			"/auth/login",
			"/users",
			"/tasks",
			"/deployments",
			"/incidents",
			"/rca",
			"/assets",
			"/search",
			"/reports/dashboard",
			"/reports/analytics",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})
})
