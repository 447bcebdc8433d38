/*
Package arena simulates what happens between a throw and a hit: snowballs in
flight and the bots that throw them.

The match core only knows that a snowball was thrown and, later, that one
landed. Physics listens for throws, keeps each snowball in the air for a
flight time and then either hits a random living opponent or misses. Bots
throw whenever they have ammo and refill when they run dry.

# Basic Usage

	a := arena.New(arena.DefaultConfig(), randutil.New(seed), logger)
	a.Attach(session)
	a.AddBot(session, "bot1", now)
	session.StartMatch(now)

	for {
		now = now.Add(step)
		a.Step(session, now)
		session.Tick(now)
	}

Step must not be called from inside an event subscriber. Live drivers call
it through match.Runner.Do so it is serialized with every other input.
*/
package arena
