package extractor

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// BuildStableSymbolID creates a deterministic ID for a function unit.
// Moving a function within its file keeps the ID; changing its package,
// receiver, name or signature changes it.
func BuildStableSymbolID(unit *FunctionUnit) string {
	if unit == nil {
		return ""
	}

	lang := strings.TrimSpace(unit.Language)
	if lang == "" {
		lang = "unknown"
	}

	pkg := strings.TrimSpace(unit.Package)
	if pkg == "" {
		pkg = "_"
	}

	name := strings.TrimSpace(unit.QualifiedName())
	if name == "" {
		name = "_"
	}

	fingerprint := strings.Join([]string{
		lang,
		pkg,
		canonicalize(unit.Filepath),
		canonicalize(unit.Receiver),
		name,
		canonicalize(unit.Signature),
	}, "|")

	sum := sha256.Sum256([]byte(fingerprint))
	short := hex.EncodeToString(sum[:8])
	return fmt.Sprintf("%s/%s:%s:%s", lang, pkg, name, short)
}

func canonicalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return whitespaceRe.ReplaceAllString(s, " ")
}
