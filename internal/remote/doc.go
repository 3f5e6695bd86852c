/*
Package remote talks to the disk backend.

The backend exposes a single endpoint:

	POST {base}/execute  {"command": "mkdisk -size=3000 -path=/d/Disco1.mia"}
	200                  {"output": "MKDISK: Disco creado exitosamente\n..."}

Client sends one command per request through resty, with a retryablehttp
transport for idempotent transport errors, an optional rate limit and a
circuit breaker. Runner executes a whole console script line by line and
concatenates the outputs the way the console shows them.

Any non-2xx status, transport failure or undecodable body is reported as an
error wrapping ErrRemoteFailure.
*/
package remote
