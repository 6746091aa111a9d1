// Command ggray converts an image to grayscale on the GPU.
package main

func main() {
	Execute()
}
