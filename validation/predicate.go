package validation

import (
	"regexp"
	"strings"
)

// Predicate decides whether a conditional mapping applies to a property
// name. Predicates are evaluated on every lookup and should be cheap.
type Predicate interface {
	Match(property string) bool
}

// PredicateFunc adapts a function to Predicate.
type PredicateFunc func(property string) bool

// Match implements Predicate.
func (f PredicateFunc) Match(property string) bool { return f(property) }

// Equals returns a Predicate that matches name, ignoring case.
func Equals(name string) Predicate {
	return equals{name: name}
}

type equals struct {
	name string
}

func (p equals) Match(property string) bool {
	return strings.EqualFold(property, p.name)
}

// HasPrefix returns a Predicate that matches names starting with prefix,
// ignoring case. Indexed properties such as "Items[0].Name" are the usual
// target.
func HasPrefix(prefix string) Predicate {
	return hasPrefix{prefix: strings.ToLower(prefix)}
}

type hasPrefix struct {
	prefix string
}

func (p hasPrefix) Match(property string) bool {
	return strings.HasPrefix(strings.ToLower(property), p.prefix)
}

// HasSuffix returns a Predicate that matches names ending with suffix,
// ignoring case.
func HasSuffix(suffix string) Predicate {
	return hasSuffix{suffix: strings.ToLower(suffix)}
}

type hasSuffix struct {
	suffix string
}

func (p hasSuffix) Match(property string) bool {
	return strings.HasSuffix(strings.ToLower(property), p.suffix)
}

// MatchesRegexp returns a Predicate that matches names accepted by re.
func MatchesRegexp(re *regexp.Regexp) Predicate {
	return PredicateFunc(re.MatchString)
}

// And returns a Predicate that matches when all predicates match.
func And(ps ...Predicate) Predicate {
	return and{ps: ps}
}

type and struct {
	ps []Predicate
}

func (p and) Match(property string) bool {
	for _, pred := range p.ps {
		if !pred.Match(property) {
			return false
		}
	}
	return true
}

// Or returns a Predicate that matches when any predicate matches.
func Or(ps ...Predicate) Predicate {
	return or{ps: ps}
}

type or struct {
	ps []Predicate
}

func (p or) Match(property string) bool {
	for _, pred := range p.ps {
		if pred.Match(property) {
			return true
		}
	}
	return false
}

// Not returns a Predicate that inverts p.
func Not(p Predicate) Predicate {
	return not{p: p}
}

type not struct {
	p Predicate
}

func (p not) Match(property string) bool {
	return !p.p.Match(property)
}
