package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_TwitterOverLength(t *testing.T) {
	tpl := Template{Platform: "twitter", MaxLength: 280}
	report := Validate(strings.Repeat("a", 300), tpl, nil)

	assert.False(t, report.LengthValid)
	assert.True(t, report.ContentPresent)
	assert.True(t, report.ImageValid)
	assert.False(t, report.PlatformSpecific)
	assert.False(t, report.OverallValid)
	assert.ElementsMatch(t, []string{"length_valid", "platform_specific"}, report.FailedRules())
}

func TestValidate_IsPure(t *testing.T) {
	tpl := Template{Platform: "instagram", MaxLength: 2200, RequiresImage: true}
	img := &ImageMeta{URL: "https://img.example/1.png"}
	text := "Caption with #hashtag"

	first := Validate(text, tpl, img)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Validate(text, tpl, img))
	}
	assert.True(t, first.OverallValid)
}

func TestValidate_EmptyContent(t *testing.T) {
	tpl := Template{Platform: "linkedin", MaxLength: 3000}
	report := Validate("   \n\t ", tpl, nil)

	assert.False(t, report.ContentPresent)
	assert.False(t, report.OverallValid)
	assert.True(t, report.LengthValid)
}

func TestValidate_InstagramNeedsHashtag(t *testing.T) {
	tpl := Template{Platform: "instagram", MaxLength: 2200, RequiresImage: true}
	img := &ImageMeta{URL: "x"}

	report := Validate("A caption without tags", tpl, img)
	assert.False(t, report.PlatformSpecific)
	assert.False(t, report.OverallValid)

	report = Validate("A caption #tagged", tpl, img)
	assert.True(t, report.PlatformSpecific)
	assert.True(t, report.OverallValid)
}

func TestValidate_ImageRules(t *testing.T) {
	required := Template{Platform: "facebook", MaxLength: 63206, RequiresImage: true}
	optional := Template{Platform: "linkedin", MaxLength: 3000}

	assert.False(t, Validate("text", required, nil).ImageValid)
	assert.True(t, Validate("text", required, &ImageMeta{URL: "u"}).ImageValid)
	assert.True(t, Validate("text", optional, nil).ImageValid)
}

func TestValidate_UnknownPlatformAlwaysPassesPlatformRule(t *testing.T) {
	tpl := Template{Platform: "newsletter", MaxLength: 10000}
	report := Validate(strings.Repeat("b", 5000), tpl, nil)
	require.True(t, report.PlatformSpecific)
	assert.True(t, report.OverallValid)
}
