package service

import "runtime"

// numThreads mirrors the --num-threads value the OCR engine runs with.
// Seam so tests can pin a stable value
var numThreads = runtime.NumCPU
