// Package catalog consumes the metadata backend's listing API.
//
// The backend indexes video, image and music folders and serves JSON
// listings at /api/videos, /api/images and /api/music. This client fetches
// those listings with retry, normalizes the descriptors into grid items
// (resolving aspect ratios and display titles), and resolves media URLs as
// folder + filename for the viewer's resource loader.
package catalog
