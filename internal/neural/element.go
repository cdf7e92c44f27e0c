package neural

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ElementKind is a node of the element type lattice. A kind specializes its
// parent: a value typed with a child kind may be supplied where the parent
// is expected, not the other way round.
type ElementKind struct {
	name   string
	parent *ElementKind
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*ElementKind{}
)

// NewElementKind registers a new kind under parent. A nil parent attaches
// the kind directly below KindElement. Registering a name twice panics.
//
// Example:
//
//	var KindPhonemes = neural.NewElementKind("Phonemes", neural.KindLabels)
func NewElementKind(name string, parent *ElementKind) *ElementKind {
	if parent == nil {
		parent = KindElement
	}
	return register(name, parent)
}

func register(name string, parent *ElementKind) *ElementKind {
	key := registryKey(name)
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[key]; dup {
		panic(fmt.Sprintf("neural: element kind %q already registered", name))
	}
	k := &ElementKind{name: name, parent: parent}
	registry[key] = k
	return k
}

// LookupElementKind finds a registered kind by name. Matching ignores case
// and an optional "Type" suffix, so "logits", "Logits" and "LogitsType"
// resolve to the same kind.
func LookupElementKind(name string) (*ElementKind, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	k, ok := registry[registryKey(name)]
	return k, ok
}

func registryKey(name string) string {
	k := strings.ToLower(strings.TrimSpace(name))
	if k != "type" {
		k = strings.TrimSuffix(k, "type")
	}
	return k
}

// Name returns the kind's registered name.
func (k *ElementKind) Name() string {
	return k.name
}

// Parent returns the kind this one specializes, or nil for the root.
func (k *ElementKind) Parent() *ElementKind {
	return k.parent
}

// DescendsFrom reports whether k is a strict descendant of other.
func (k *ElementKind) DescendsFrom(other *ElementKind) bool {
	for p := k.parent; p != nil; p = p.parent {
		if p == other {
			return true
		}
	}
	return false
}

// Built-in lattice.
var (
	KindElement = &ElementKind{name: "Element"}

	KindVoid     = register("Void", KindElement)
	KindChannel  = register("Channel", KindElement)
	KindLogits   = register("Logits", KindElement)
	KindLogprobs = register("Logprobs", KindElement)
	KindProbs    = register("Probs", KindElement)
	KindLabels   = register("Labels", KindElement)
	KindLoss     = register("Loss", KindElement)
	KindLengths  = register("Lengths", KindElement)
	KindMask     = register("Mask", KindElement)
	KindIndex    = register("Index", KindElement)

	KindPredictions       = register("Predictions", KindElement)
	KindRegressionValues  = register("RegressionValues", KindPredictions)
	KindCategoricalValues = register("CategoricalValues", KindPredictions)

	KindEncodedRepresentation         = register("EncodedRepresentation", KindChannel)
	KindAcousticEncodedRepresentation = register("AcousticEncodedRepresentation", KindEncodedRepresentation)

	KindSpectrogram     = register("Spectrogram", KindChannel)
	KindMelSpectrogram  = register("MelSpectrogram", KindSpectrogram)
	KindMFCCSpectrogram = register("MFCCSpectrogram", KindSpectrogram)

	KindAudioSignal = register("AudioSignal", KindElement)
)

func init() {
	registry[registryKey(KindElement.name)] = KindElement
}

// ElementType is the semantic type of a tensor's values: a lattice kind plus
// optional structural fields (for example the sample rate of an audio
// signal). ElementType values are immutable. The zero value is Void.
type ElementType struct {
	kind   *ElementKind
	fields map[string]string
}

// NewElementType builds an element type of kind k with the given fields.
// The fields map is copied.
func NewElementType(k *ElementKind, fields map[string]string) ElementType {
	return ElementType{kind: k, fields: maps.Clone(fields)}
}

// Kind returns the lattice node of the type.
func (e ElementType) Kind() *ElementKind {
	if e.kind == nil {
		return KindVoid
	}
	return e.kind
}

// Fields returns a copy of the structural fields, or nil if there are none.
func (e ElementType) Fields() map[string]string {
	return maps.Clone(e.fields)
}

// Compare relates e (actual) to expected through the lattice.
func (e ElementType) Compare(expected ElementType) ComparisonResult {
	a, x := e.Kind(), expected.Kind()
	switch {
	case a == KindVoid || x == KindVoid:
		return Unchecked
	case a == x:
		if maps.Equal(e.fields, expected.fields) {
			return Same
		}
		return SameTypeIncompatibleParams
	case a.DescendsFrom(x):
		return Greater
	case x.DescendsFrom(a):
		return Less
	default:
		return Incompatible
	}
}

// String renders the type in literal form, e.g. "AudioSignal(freq=16000)".
func (e ElementType) String() string {
	name := e.Kind().Name()
	if len(e.fields) == 0 {
		return name
	}
	keys := slices.Sorted(maps.Keys(e.fields))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + e.fields[k]
	}
	return name + "(" + strings.Join(parts, ",") + ")"
}

// Constructors for the built-in element types.

func Element() ElementType                       { return ElementType{kind: KindElement} }
func Void() ElementType                          { return ElementType{kind: KindVoid} }
func ChannelType() ElementType                   { return ElementType{kind: KindChannel} }
func Logits() ElementType                        { return ElementType{kind: KindLogits} }
func Logprobs() ElementType                      { return ElementType{kind: KindLogprobs} }
func Probs() ElementType                         { return ElementType{kind: KindProbs} }
func Labels() ElementType                        { return ElementType{kind: KindLabels} }
func Loss() ElementType                          { return ElementType{kind: KindLoss} }
func Lengths() ElementType                       { return ElementType{kind: KindLengths} }
func Mask() ElementType                          { return ElementType{kind: KindMask} }
func Index() ElementType                         { return ElementType{kind: KindIndex} }
func Predictions() ElementType                   { return ElementType{kind: KindPredictions} }
func RegressionValues() ElementType              { return ElementType{kind: KindRegressionValues} }
func CategoricalValues() ElementType             { return ElementType{kind: KindCategoricalValues} }
func EncodedRepresentation() ElementType         { return ElementType{kind: KindEncodedRepresentation} }
func AcousticEncodedRepresentation() ElementType { return ElementType{kind: KindAcousticEncodedRepresentation} }
func Spectrogram() ElementType                   { return ElementType{kind: KindSpectrogram} }
func MelSpectrogram() ElementType                { return ElementType{kind: KindMelSpectrogram} }
func MFCCSpectrogram() ElementType               { return ElementType{kind: KindMFCCSpectrogram} }

// AudioSignal is a raw waveform; freq is its sample rate in Hz.
// A freq of 0 leaves the sample rate unspecified.
func AudioSignal(freq int) ElementType {
	if freq <= 0 {
		return ElementType{kind: KindAudioSignal}
	}
	return ElementType{kind: KindAudioSignal, fields: map[string]string{"freq": fmt.Sprint(freq)}}
}
