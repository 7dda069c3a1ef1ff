// Package main CreatorKit Server API
//
//	@title						CreatorKit Server API
//	@version					1.0
//	@description				Entitlement-gated AI content generation for articles, titles, images and resume reviews.
//
//	@host						localhost:8080
//	@BasePath					/api
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}"
//
//	@tag.name					AI
//	@tag.description			Generation endpoints
//
//	@tag.name					Creations
//	@tag.description			Creation history, community feed and likes
//
//	@tag.name					Usage
//	@tag.description			Free-tier usage
//
//	@tag.name					Admin
//	@tag.description			Administrative endpoints
package main
