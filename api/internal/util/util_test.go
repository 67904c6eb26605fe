package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences(`  {"a":1} `))
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":{"b":2}}`, ExtractJSONObject(`Here you go: {"a":{"b":2}} hope it helps`))
	assert.Equal(t, "", ExtractJSONObject("no json here"))
	assert.Equal(t, "", ExtractJSONObject("} backwards {"))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 4, WordCount("The dog runned fast."))
	assert.Equal(t, 0, WordCount("   \n\t"))
	assert.Equal(t, 2, WordCount(" two\n\nwords "))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "The d", TruncateRunes("The dog", 5))
	assert.Equal(t, "short", TruncateRunes("short", 20))
	assert.Equal(t, "", TruncateRunes("abc", 0))
	assert.Equal(t, "héé", TruncateRunes("hééllo", 3))
}

func TestRuneLen(t *testing.T) {
	assert.Equal(t, 5, RuneLen("héllo"))
	assert.Equal(t, 0, RuneLen(""))
}

func TestSHA256Hex(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", SHA256Hex(""))
	assert.Len(t, SHA256Hex("essay"), 64)
}
