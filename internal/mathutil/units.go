package mathutil

// UnitsPerMetre converts between map units (the editor's inch-based
// grid) and metres: 1 m = 39.37 units.
const UnitsPerMetre = 39.37
