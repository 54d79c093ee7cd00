// Package tokenizer adapts tiktoken-go to the small interface the registry
// and session need: resolve a model or encoding name to an Encoding and
// encode text with it.
package tokenizer

import (
	"sort"
	"strings"
	"sync"

	"github.com/lyndonlyu/tact/internal/apperr"
	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// Encoding turns text into token ids.
type Encoding interface {
	Name() string
	Encode(text string) []int
}

// Library resolves names to encodings.
type Library interface {
	// EncodingForModel resolves a model name the library knows natively.
	EncodingForModel(model string) (Encoding, error)
	// GetEncoding resolves an encoding by its own name, e.g. "cl100k_base".
	GetEncoding(name string) (Encoding, error)
}

// Count returns the number of tokens enc produces for text.
func Count(enc Encoding, text string) int {
	return len(enc.Encode(text))
}

// KnownEncodings lists the encoding names tiktoken-go ships.
func KnownEncodings() []string {
	return []string{
		tiktoken.MODEL_CL100K_BASE,
		tiktoken.MODEL_O200K_BASE,
		tiktoken.MODEL_P50K_BASE,
		tiktoken.MODEL_P50K_EDIT,
		tiktoken.MODEL_R50K_BASE,
	}
}

type Options struct {
	// Offline loads BPE ranks from the files embedded in tiktoken-go-loader
	// instead of downloading them on first use.
	Offline bool
}

var installLoader sync.Once

// Tiktoken is the Library backed by github.com/pkoukk/tiktoken-go.
// Built encodings are cached by name since constructing one parses the
// whole rank table.
type Tiktoken struct {
	mu    sync.Mutex
	cache map[string]*tiktokenEncoding
}

func NewTiktoken(opts Options) *Tiktoken {
	if opts.Offline {
		installLoader.Do(func() {
			tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
		})
	}
	return &Tiktoken{cache: make(map[string]*tiktokenEncoding)}
}

func (t *Tiktoken) EncodingForModel(model string) (Encoding, error) {
	name, ok := NativeEncodingName(model)
	if !ok {
		return nil, apperr.New(apperr.KindLookup, "tokenizer.encoding_for_model",
			"no native encoding for model %q", model)
	}
	return t.GetEncoding(name)
}

func (t *Tiktoken) GetEncoding(name string) (Encoding, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if enc, ok := t.cache[name]; ok {
		return enc, nil
	}
	tk, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, &apperr.Error{
			Kind: apperr.KindLookup,
			Op:   "tokenizer.get_encoding",
			Msg:  "unknown encoding " + quote(name),
			Err:  err,
		}
	}
	enc := &tiktokenEncoding{name: name, tk: tk}
	t.cache[name] = enc
	return enc, nil
}

// NativeEncodingName looks model up in tiktoken-go's own model tables:
// exact names first, then the longest matching prefix.
func NativeEncodingName(model string) (string, bool) {
	if name, ok := tiktoken.MODEL_TO_ENCODING[model]; ok {
		return name, true
	}
	prefixes := make([]string, 0, len(tiktoken.MODEL_PREFIX_TO_ENCODING))
	for p := range tiktoken.MODEL_PREFIX_TO_ENCODING {
		prefixes = append(prefixes, p)
	}
	// Longest first so "gpt-4o-" wins over "gpt-4-" style overlaps.
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })
	for _, p := range prefixes {
		if strings.HasPrefix(model, p) {
			return tiktoken.MODEL_PREFIX_TO_ENCODING[p], true
		}
	}
	return "", false
}

type tiktokenEncoding struct {
	name string
	tk   *tiktoken.Tiktoken
}

func (e *tiktokenEncoding) Name() string {
	return e.name
}

// Encode treats special-token text as ordinary text.
func (e *tiktokenEncoding) Encode(text string) []int {
	return e.tk.Encode(text, nil, nil)
}

func quote(s string) string {
	return `"` + s + `"`
}
