package rename

import (
	"crypto/md5"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testTime = time.Date(2026, 8, 26, 9, 5, 7, 42*1e6, time.UTC)

func TestApply_DisabledReturnsOriginal(t *testing.T) {
	p := Policy{Enabled: false, Format: "{y}{m}{d}"}
	assert.Equal(t, "cat.png", p.Apply("cat.png", testTime))
}

func TestApply_EmptyFormatReturnsOriginal(t *testing.T) {
	p := Policy{Enabled: true}
	assert.Equal(t, "cat.png", p.Apply("cat.png", testTime))
}

func TestApply_DateTimeTokens(t *testing.T) {
	p := Policy{Enabled: true, Format: "{y}{m}{d}-{h}{i}{s}-{ms}"}
	assert.Equal(t, "20260826-090507-042.png", p.Apply("cat.png", testTime))
}

func TestApply_OriginAndExtTokens(t *testing.T) {
	p := Policy{Enabled: true, Format: "img-{origin}.{ext}"}
	assert.Equal(t, "img-cat.png", p.Apply("cat.png", testTime))
}

func TestApply_Md5Token(t *testing.T) {
	sum := md5.Sum([]byte("cat.png"))
	p := Policy{Enabled: true, Format: "{md5}"}
	assert.Equal(t, hex.EncodeToString(sum[:])+".png", p.Apply("cat.png", testTime))
}

func TestApply_UuidTokenProducesFreshNames(t *testing.T) {
	p := Policy{Enabled: true, Format: "{uuid}"}
	a := p.Apply("cat.png", testTime)
	b := p.Apply("cat.png", testTime)
	assert.NotEqual(t, a, b, "uuid token must never repeat")
	assert.Contains(t, a, ".png")
}

func TestApply_ExtensionPreservedForExtensionlessOriginal(t *testing.T) {
	p := Policy{Enabled: true, Format: "{origin}-copy"}
	assert.Equal(t, "notes-copy", p.Apply("notes", testTime))
}

func TestApply_BlankExpansionFallsBack(t *testing.T) {
	p := Policy{Enabled: true, Format: "  "}
	assert.Equal(t, "cat.png", p.Apply("cat.png", testTime))
}
