// Package ridership simulates rider flow along a rail line for one train at
// a time.
//
// A traversal visits every station in travel order. At each station riders
// scheduled to alight leave, the station's drawn demand boards, riders above
// the vehicle capacity are deferred and stay on the platform, and the riders
// that did board are spread round-robin over every station downstream.
//
// Model implements montecarlo.Trial: one trial is NumTrains forward plus
// NumTrains reverse traversals and its outcome is the total number of riders
// served.
package ridership
