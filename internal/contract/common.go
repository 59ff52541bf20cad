package contract

import "github.com/alexanderramin/scurve/internal/app"

type SeriesSet = app.SeriesSet

type Diagnostics = app.Diagnostics

type CurveRequest = app.CurveRequest

var NewCurveRequest = app.NewCurveRequest

type CurveResponse = app.CurveResponse

type ManualEntryRequest = app.ManualEntryRequest

var NewManualEntryRequest = app.NewManualEntryRequest

type ProgressView = app.ProgressView

type PackageSummary = app.PackageSummary
type PackageTree = app.PackageTree
type SubpackageNode = app.SubpackageNode
type ServiceNode = app.ServiceNode
type ImportResult = app.ImportResult
