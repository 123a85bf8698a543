//go:build ebiten

package main

import _ "github.com/gogpu/stage/backend/ebitengine"
