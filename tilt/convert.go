package tilt

import "math"

// Celsius converts a Fahrenheit temperature to Celsius.
func Celsius(fahrenheit float64) float64 {
  return (fahrenheit - 32) * 5 / 9
}

// Plato converts specific gravity to degrees Plato using an empirical cubic
// fit. The coefficients are the constants of the fit, not tunables.
func Plato(sg float64) float64 {
  return 135.997*math.Pow(sg, 3) - 630.272*math.Pow(sg, 2) + 1111.14*sg - 616.868
}
