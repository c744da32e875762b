package sql

import "embed"

//go:embed queries/editpair_intersect.sql
var EditPairIntersect string

//go:embed migrations
var Migrations embed.FS
