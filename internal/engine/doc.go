// Package engine runs the bouncing-lines effect.
//
// An [Engine] is either idle or running. [Engine.Activate] puts the
// display surface into the effect's indexed mode, uploads the palette and
// seeds one line; every [Engine.Tick] then:
//
//  1. erases the oldest line in the ring
//  2. moves both endpoints of the newest line by the shared velocities,
//     bouncing off the frame edges
//  3. gives the new line the next hue and stores it over the oldest slot
//  4. redraws every line from oldest to newest, so the freshest line wins
//     where anti-aliased edges overlap
//  5. publishes the frame to the surface
//
// The ring holds a fixed number of lines and is never resized; its slot
// after the head is always the next one to be erased.
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. Hosts drive them from one loop.
package engine
