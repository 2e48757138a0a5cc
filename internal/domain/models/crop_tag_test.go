package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCropTag(t *testing.T) {
	cases := map[string]string{
		"Soybeans":          "beans",
		"SOY":               "beans",
		"Non-GMO Beans":     "beans",
		"Yellow Corn":       "corn",
		"Amylose Corn":      "amylose",
		"Amylose Soy Blend": "amylose",
		"Wheat":             "wheat",
		"":                  "corn",
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeCropTag(raw), "raw=%q", raw)
	}
}

func TestCropTagRulesOrder(t *testing.T) {
	// amylose must win over corn for high-amylose corn tickets
	assert.Equal(t, TagAmylose, CropTagRules[0].Tag)
	assert.Equal(t, TagCorn, CropTagRules[len(CropTagRules)-1].Tag)
}
