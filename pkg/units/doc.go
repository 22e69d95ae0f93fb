// Package units is a small dimensional-analysis engine. A Registry knows
// named units, their SI scale factors and their signatures over the base
// dimensions; it parses unit expressions such as "kg/m³" or "lbf*ft" and
// produces tagged values that convert between compatible units.
//
//	r := units.Default()
//	v, _ := r.New(1000, "lb")
//	kg, _ := r.Convert(v, "kg") // 453.592 kg
//
// Converting between incompatible units fails with a *DimensionalityError.
package units
