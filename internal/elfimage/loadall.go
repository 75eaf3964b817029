// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package elfimage

import "golang.org/x/sync/errgroup"

// LoadAll constructs one [Image] per path concurrently.
//
// Images are independent, so loading them in parallel needs no
// coordination. On error all already constructed images are closed and
// only the error is returned.
func LoadAll(paths ...string) ([]*Image, error) {
	images := make([]*Image, len(paths))

	eg := errgroup.Group{}

	for idx, path := range paths {
		idx, path := idx, path

		eg.Go(func() error {
			img, err := New(path)
			if err != nil {
				return err
			}

			images[idx] = img

			return nil
		})
	}

	err := eg.Wait()
	if err != nil {
		for _, img := range images {
			if img != nil {
				_ = img.Close()
			}
		}

		return nil, err
	}

	return images, nil
}
