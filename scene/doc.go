// Package scene loads declarative shape lists and replays them onto a
// shapebatch.Batch.
//
// A scene file is YAML or TOML, chosen by extension:
//
//	width: 320
//	height: 240
//	background: "#202020"
//	transform:
//	  translate: [160, 120]
//	shapes:
//	  - kind: rect
//	    rect: [-50, -30, 100, 60]
//	    color: "#ff8800"
//	    fill: true
//	  - kind: circle
//	    center: [0, 0]
//	    radius: 40
//	    thickness: 3
//	    color: white
//	  - kind: line
//	    from: [-80, 0]
//	    to: [80, 0]
//	    color: red
//	  - kind: polygon
//	    points: [[0, -60], [20, -40], [-20, -40]]
//	    color: "#00ff0080"
//	    fill: true
//
// Colors are hex strings in the forms accepted by shapebatch.Hex or one of
// the names black, white, red, green, blue, yellow, cyan, magenta and
// transparent. Coordinates are in screen space before the optional
// transform.
//
// Scenes can also be assembled in code with Builder.
package scene
