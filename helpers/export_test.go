package helpers

// Exported aliases for testing internal functions from the
// helpers_test package.

// ToStringForTest exposes toString.
var ToStringForTest = toString

// TruthyForTest exposes truthy.
var TruthyForTest = truthy

// ToIntForTest exposes toInt.
var ToIntForTest = toInt
