package contacts

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Outcome is the result of resolving one schedule name.
type Outcome struct {
	// Name is the normalized (trimmed, lower-cased) name that was matched.
	Name string
	// Emails holds every matching address; empty when unmatched.
	Emails map[string]struct{}
	// Message is the operator notification for an unmatched name.
	Message string
}

// Matched reports whether at least one address was found.
func (o Outcome) Matched() bool {
	return len(o.Emails) > 0
}

// Ambiguous reports whether the name matched more than one address.
func (o Outcome) Ambiguous() bool {
	return len(o.Emails) > 1
}

// SortedEmails returns the matched addresses in lexical order.
func (o Outcome) SortedEmails() []string {
	out := make([]string, 0, len(o.Emails))
	for e := range o.Emails {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// UnmatchedMessage is the operator text for a name with no contact.
func UnmatchedMessage(name string) string {
	return fmt.Sprintf("Action required.\nName: '%s' not found in contacts.", name)
}

// AmbiguousMessage is the operator text for a name with several contacts.
func AmbiguousMessage(name string, emails []string) string {
	return fmt.Sprintf("Action required.\nName: '%s' matched multiple contacts: %s.", name, strings.Join(emails, ", "))
}

// Resolver matches schedule names against a Directory.
type Resolver struct {
	dir    *Directory
	logger *zap.Logger
}

// NewResolver creates a resolver over dir.
func NewResolver(dir *Directory, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{dir: dir, logger: logger}
}

// Resolve finds the addresses that should receive the reminder for name.
//
// Matching is case-insensitive. Primary names are matched by prefix, so
// "jan" finds "Jan de Vries". Only when no primary name matches are the extra
// names searched, and there name must appear as a whole word. An empty name
// never matches. Contacts without an email address are never returned.
func (r *Resolver) Resolve(name string) Outcome {
	name = strings.ToLower(strings.TrimSpace(name))
	out := Outcome{Name: name, Emails: make(map[string]struct{})}

	if name == "" {
		out.Message = UnmatchedMessage(name)
		return out
	}

	contacts := r.dir.All()
	for _, c := range contacts {
		if c.Email == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(c.PrimaryName), name) {
			out.Emails[c.Email] = struct{}{}
		}
	}

	if len(out.Emails) == 0 {
		for _, c := range contacts {
			if c.Email == "" || c.ExtraNames == "" {
				continue
			}
			if containsWord(strings.ToLower(c.ExtraNames), name) {
				r.logger.Debug("Matched on extra names",
					zap.String("name", name),
					zap.String("contact", c.PrimaryName))
				out.Emails[c.Email] = struct{}{}
			}
		}
	}

	if len(out.Emails) == 0 {
		out.Message = UnmatchedMessage(name)
		r.logger.Warn("Name not found in contacts", zap.String("name", name))
		return out
	}

	r.logger.Debug("Resolved name",
		zap.String("name", name),
		zap.Strings("emails", out.SortedEmails()))
	return out
}

// containsWord reports whether word occurs in text delimited by word
// boundaries, with letters, digits and underscore counting as word runes.
// Both arguments must already be lower-cased.
func containsWord(text, word string) bool {
	for start := 0; start <= len(text)-len(word); {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(word)
		if isBoundary(text, i) && isBoundary(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		start = i + size
	}
	return false
}

// isBoundary reports whether pos in s sits between a word rune and a
// non-word rune, treating both ends of s as non-word.
func isBoundary(s string, pos int) bool {
	before, after := false, false
	if pos > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:pos])
		before = isWordRune(r)
	}
	if pos < len(s) {
		r, _ := utf8.DecodeRuneInString(s[pos:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
