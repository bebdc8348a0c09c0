// Copyright 2026 Palantir Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package registry

type unitKind int

const (
	unitNone unitKind = iota
	unitAmperes
	unitBytes
	unitCelsius
	unitGrams
	unitJoules
	unitMeters
	unitRatios
	unitSeconds
	unitVolts
	unitOther
)

var unitNames = map[unitKind]string{
	unitAmperes: "amperes",
	unitBytes:   "bytes",
	unitCelsius: "celsius",
	unitGrams:   "grams",
	unitJoules:  "joules",
	unitMeters:  "meters",
	unitRatios:  "ratios",
	unitSeconds: "seconds",
	unitVolts:   "volts",
}

// Unit is the unit of a metric. Use one of the predefined base units or
// OtherUnit for anything else. The zero Unit means no unit.
type Unit struct {
	kind  unitKind
	other string
}

var (
	Amperes = Unit{kind: unitAmperes}
	Bytes   = Unit{kind: unitBytes}
	Celsius = Unit{kind: unitCelsius}
	Grams   = Unit{kind: unitGrams}
	Joules  = Unit{kind: unitJoules}
	Meters  = Unit{kind: unitMeters}
	Ratios  = Unit{kind: unitRatios}
	Seconds = Unit{kind: unitSeconds}
	Volts   = Unit{kind: unitVolts}
)

// OtherUnit returns a unit with a custom name.
func OtherUnit(name string) Unit {
	return Unit{kind: unitOther, other: name}
}

// ParseUnit returns the base unit with the given canonical name, or an
// OtherUnit with that name. An empty name returns the zero Unit.
func ParseUnit(name string) Unit {
	if name == "" {
		return Unit{}
	}
	for k, n := range unitNames {
		if n == name {
			return Unit{kind: k}
		}
	}
	return OtherUnit(name)
}

// IsZero reports whether u is the zero Unit.
func (u Unit) IsZero() bool {
	return u.kind == unitNone
}

// String returns the canonical lowercase name of the unit, the custom name
// of an OtherUnit, or the empty string for the zero Unit.
func (u Unit) String() string {
	if u.kind == unitOther {
		return u.other
	}
	return unitNames[u.kind]
}
