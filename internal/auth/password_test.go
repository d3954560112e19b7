package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = ginkgo.Describe("PasswordManager", func() {
	var manager *PasswordManager

	ginkgo.BeforeEach(func() {
		manager = NewPasswordManager(bcrypt.MinCost)
	})

	ginkgo.Describe("VerifyPassword", func() {
		var storedHash string

		ginkgo.BeforeEach(func() {
			var err error
			storedHash, err = manager.HashPassword("correct_password")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.Context("when the password matches", func() {
			ginkgo.It("should return true", func() {
				gomega.Expect(manager.VerifyPassword("correct_password", storedHash)).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("when the password does not match", func() {
			ginkgo.It("should return false", func() {
				gomega.Expect(manager.VerifyPassword("wrong_password", storedHash)).To(gomega.BeFalse())
			})

			ginkgo.It("should return false for an empty password", func() {
				gomega.Expect(manager.VerifyPassword("", storedHash)).To(gomega.BeFalse())
			})
		})

		ginkgo.Context("when the stored hash is unusable", func() {
			ginkgo.It("should return false for an empty hash", func() {
				gomega.Expect(manager.VerifyPassword("correct_password", "")).To(gomega.BeFalse())
			})

			ginkgo.It("should return false for a malformed hash", func() {
				gomega.Expect(manager.VerifyPassword("correct_password", "not-a-bcrypt-hash")).To(gomega.BeFalse())
			})

			ginkgo.It("should return false for a truncated hash", func() {
				gomega.Expect(manager.VerifyPassword("correct_password", storedHash[:10])).To(gomega.BeFalse())
			})
		})
	})

	ginkgo.Describe("HashPassword", func() {
		ginkgo.It("should produce a hash the verifier accepts", func() {
			// When
			hash, err := manager.HashPassword("test_password_123")

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(hash).ToNot(gomega.BeEmpty())
			gomega.Expect(hash).ToNot(gomega.Equal("test_password_123"))
			gomega.Expect(manager.VerifyPassword("test_password_123", hash)).To(gomega.BeTrue())
		})

		ginkgo.It("should generate different hashes for the same password", func() {
			// When
			hash1, err1 := manager.HashPassword("same_password")
			hash2, err2 := manager.HashPassword("same_password")

			// Then
			gomega.Expect(err1).ToNot(gomega.HaveOccurred())
			gomega.Expect(err2).ToNot(gomega.HaveOccurred())
			gomega.Expect(hash1).ToNot(gomega.Equal(hash2)) // Salts make them different
		})
	})

	ginkgo.Describe("NewPasswordManager", func() {
		ginkgo.It("should fall back to the bcrypt default cost when given zero", func() {
			// Given
			defaulted := NewPasswordManager(0)

			// When
			hash, err := defaulted.HashPassword("password")

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			cost, err := bcrypt.Cost([]byte(hash))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(cost).To(gomega.Equal(bcrypt.DefaultCost))
		})
	})
})
