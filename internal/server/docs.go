package server

// General API annotations for swag. Endpoint annotations live on the
// handlers; the generated document is embedded by internal/embedded/openapi.
//
// @title Mariner API
// @version 1.0
// @description REST API for the mariner crew handbook: forms directory, ship classes and port guides.
// @description
// @description Features:
// @description - Category and substring filtering with per-category counts
// @description - Paged port guide carousels with marker focus
// @description - Live port conditions, pushed over WebSocket and Server-Sent Events
// @description - In-memory response caching and per-client rate limiting
//
// @license.name MIT
//
// @host localhost:8080
// @BasePath /api/v1
