// Copyright CredKit Contributors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may not
// use this file except in compliance with the License. A copy of the
// License is located at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing
// permissions and limitations under the License.

package profileprovider

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/credkit/credkit/credentials"
)

// Watch observes the shared credentials file and invokes onChange each
// time the file is written or replaced, until ctx is cancelled. The
// parent directory is watched rather than the file itself because most
// tools rewrite the file by rename, which replaces the watched inode.
func (p *ProfileProvider) Watch(ctx context.Context, onChange func()) error {
	if p.path == "" {
		return credentials.NewConfigurationError("shared credentials file location could not be determined")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return credentials.NewConfigurationError("unable to create file watcher: " + err.Error())
	}

	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return credentials.NewConfigurationError("unable to watch " + filepath.Dir(p.path) + ": " + err.Error())
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(p.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					p.log.Infof("shared credentials file %s changed", p.path)
					onChange()
				}
			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.log.Warnf("credentials file watcher error: %v", watchErr)
			}
		}
	}()

	return nil
}
