package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeclaration_Resolve(t *testing.T) {
	noon := time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC)
	t.Run("Should pass version content through verbatim", func(t *testing.T) {
		decl := Declaration{Location: "", Content: "1.2.3"}
		base := decl.Resolve(noon)
		assert.Equal(t, "v1.2.3", base.Name)
		assert.False(t, base.Date)
	})
	t.Run("Should strip all whitespace before resolving", func(t *testing.T) {
		plain := Declaration{Content: "1.2.3"}.Resolve(noon)
		padded := Declaration{Content: " 1.2.3 \n"}.Resolve(noon)
		assert.Equal(t, plain.Name, padded.Name)
	})
	t.Run("Should not validate version shape", func(t *testing.T) {
		decl := Declaration{Content: "abc"}
		base := decl.Resolve(noon)
		assert.Equal(t, "vabc", base.Name)
		assert.False(t, decl.SemverLike())
	})
	t.Run("Should resolve date sentinel without leading zeros", func(t *testing.T) {
		decl := Declaration{Content: "date"}
		base := decl.Resolve(noon)
		assert.Equal(t, "v2024.3.7", base.Name)
		assert.True(t, base.Date)
	})
	t.Run("Should resolve date sentinel with surrounding whitespace", func(t *testing.T) {
		decl := Declaration{Content: "  date\n"}
		base := decl.Resolve(noon)
		assert.True(t, base.Date)
		assert.Equal(t, "v2024.3.7", base.Name)
	})
	t.Run("Should keep double-digit date components as-is", func(t *testing.T) {
		decl := Declaration{Content: "date"}
		base := decl.Resolve(time.Date(2024, time.November, 23, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, "v2024.11.23", base.Name)
	})
	t.Run("Should namespace declarations below the tree root", func(t *testing.T) {
		decl := Declaration{Location: "service1", Content: "1.2.3"}
		base := decl.Resolve(noon)
		assert.Equal(t, "service1/v1.2.3", base.Name)
	})
	t.Run("Should not namespace declarations at the tree root", func(t *testing.T) {
		assert.Equal(t, "v1.2.3", Declaration{Location: "", Content: "1.2.3"}.Resolve(noon).Name)
		assert.Equal(t, "v1.2.3", Declaration{Location: ".", Content: "1.2.3"}.Resolve(noon).Name)
	})
	t.Run("Should namespace nested locations with a single trailing slash", func(t *testing.T) {
		decl := Declaration{Location: "services/api", Content: "date"}
		base := decl.Resolve(noon)
		assert.Equal(t, "services/api/v2024.3.7", base.Name)
	})
}

func TestDeclaration_Path(t *testing.T) {
	t.Run("Should return plain file name at the root", func(t *testing.T) {
		assert.Equal(t, "Version", Declaration{}.Path())
	})
	t.Run("Should join location and file name", func(t *testing.T) {
		assert.Equal(t, "service1/Version", Declaration{Location: "service1"}.Path())
	})
}

func TestDeclaration_SemverLike(t *testing.T) {
	t.Run("Should recognize semantic versions", func(t *testing.T) {
		assert.True(t, Declaration{Content: "1.2.3"}.SemverLike())
		assert.True(t, Declaration{Content: " 2.0.0-rc.1 "}.SemverLike())
	})
	t.Run("Should reject non-semver content", func(t *testing.T) {
		assert.False(t, Declaration{Content: "abc"}.SemverLike())
	})
}
