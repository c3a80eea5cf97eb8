package config

// Template is a configuration file spelling out every default.
const Template = `; Heat sink validation plotter.

[heatsink]
x = -1
y-start = -0.3
fin-thickness = 0.1
fins = 3
gap = 0.25
length = 1.0

[channel]
x-min = -2.5
x-max = 2.5
y-min = -0.5
y-max = 0.5

[grid]
resolution = 100

[temperature]
quantity = c
scale = 273.15
baseline = 293.498
absolute = false

[plot]
title = Heat sink 2D: PINN vs True Solution
label = custom_plot
predicted-source = Modulus
reference-source = OpenFOAM
colormap = jet
width = 20
height = 10
dpi = 100

[quantities]
name = p
name = u
name = v
name = nu
name = c

[scale "p"]
min = -1
max = 9

[scale "u"]
min = 0
max = 2.2

[scale "v"]
min = -1.2
max = 1.2

[scale "nu"]
min = 0.01
max = 0.04

[scale "c"]
min = 0
max = 55

[column "Points:0"]
name = x

[column "Points:1"]
name = y

[column "U:0"]
name = u

[column "U:1"]
name = v

[column "p"]
name = p

[column "d"]
name = sdf

[column "nuT"]
name = nu

[column "T"]
name = c

[openfoam]
nu-offset = 0.01
input = x
input = y
input = sdf
`
