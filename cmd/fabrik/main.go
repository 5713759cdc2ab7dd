// Command fabrik runs GraphiDesk FabRik scripts without the desktop UI.
//
//	fabrik scripts
//	fabrik run caisson_generation.jsx --params '{"largeur": 1200, "hauteur": 600}'
//	fabrik batch caissons.xlsx --labels labels.pdf
//	fabrik report runs.pdf
package main

func main() {
	Execute()
}
