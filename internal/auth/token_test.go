package auth

import (
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("JWTTokenGenerator", func() {
	var (
		tokenGen *JWTTokenGenerator
		secret   string        = "another-test-secret-32-characters!!!"
		lifetime time.Duration = 24 * time.Hour
	)

	ginkgo.BeforeEach(func() {
		tokenGen = NewJWTTokenGenerator(secret, lifetime)
	})

	ginkgo.Describe("Issue", func() {
		ginkgo.It("should generate a token that round-trips through Verify", func() {
			// Given
			identityID := "id-123"
			username := "alice"

			// When
			token, err := tokenGen.Issue(identityID, username)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(token).ToNot(gomega.BeEmpty())

			claims, err := tokenGen.Verify(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.IdentityID).To(gomega.Equal(identityID))
			gomega.Expect(claims.Username).To(gomega.Equal(username))
		})

		ginkgo.It("should set expiry to issued-at plus the configured lifetime", func() {
			// Given a pinned clock
			issuedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
			pinnedGen := NewJWTTokenGeneratorWithClock(secret, lifetime, func() time.Time { return issuedAt })

			// When
			token, err := pinnedGen.Issue("id-123", "alice")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := pinnedGen.Verify(token)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.IssuedAt.Time).To(gomega.BeTemporally("==", issuedAt))
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("==", issuedAt.Add(lifetime)))
		})

		ginkgo.It("should fall back to the default lifetime when none is configured", func() {
			// Given
			issuedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
			defaultGen := NewJWTTokenGeneratorWithClock(secret, 0, func() time.Time { return issuedAt })

			// When
			token, err := defaultGen.Issue("id-123", "alice")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := defaultGen.Verify(token)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("==", issuedAt.Add(DefaultTokenLifetime)))
		})
	})

	ginkgo.Describe("Verify", func() {
		ginkgo.Context("with an invalid token", func() {
			ginkgo.It("should return ErrInvalidToken for a malformed token", func() {
				// When
				claims, err := tokenGen.Verify("invalid.token.here")

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
				gomega.Expect(claims).To(gomega.BeNil())
			})

			ginkgo.It("should return ErrInvalidToken for an empty token", func() {
				// When
				claims, err := tokenGen.Verify("")

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
				gomega.Expect(claims).To(gomega.BeNil())
			})

			ginkgo.It("should reject a token signed with a different secret", func() {
				// Given
				otherGen := NewJWTTokenGenerator("a-completely-different-secret-here!!", lifetime)
				token, err := otherGen.Issue("id-123", "alice")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When
				claims, err := tokenGen.Verify(token)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
				gomega.Expect(claims).To(gomega.BeNil())
			})

			ginkgo.It("should reject a tampered token", func() {
				// Given
				token, err := tokenGen.Issue("id-123", "alice")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				tampered := token + "xx"

				// When
				claims, err := tokenGen.Verify(tampered)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
				gomega.Expect(claims).To(gomega.BeNil())
			})
		})

		ginkgo.Context("with an expired token", func() {
			ginkgo.It("should return ErrTokenExpired", func() {
				// Given a token issued two days ago with a one-day lifetime
				pastClock := func() time.Time { return time.Now().Add(-48 * time.Hour) }
				pastGen := NewJWTTokenGeneratorWithClock(secret, lifetime, pastClock)
				token, err := pastGen.Issue("id-123", "alice")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When verified against the real clock
				claims, err := tokenGen.Verify(token)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
				gomega.Expect(claims).To(gomega.BeNil())
			})

			ginkgo.It("should honour the injected clock when deciding expiry", func() {
				// Given a token valid at issue time
				issuedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
				gen := NewJWTTokenGeneratorWithClock(secret, time.Hour, func() time.Time { return issuedAt })
				token, err := gen.Issue("id-123", "alice")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When verified by a generator whose clock sits past the expiry
				lateClock := func() time.Time { return issuedAt.Add(2 * time.Hour) }
				lateGen := NewJWTTokenGeneratorWithClock(secret, time.Hour, lateClock)
				claims, err := lateGen.Verify(token)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
				gomega.Expect(claims).To(gomega.BeNil())
			})
		})
	})
})
